package config

// Identity is the subset of configuration the engine actually consumes:
// who to credit as author/committer on a commit. Real git's config
// format covers a much wider key space (core.*, remote.*, diff.*); this
// engine only ever reads user.name and user.email, so that's all a
// config file needs to declare.
type Identity struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

func (id Identity) complete() bool {
	return id.Name != "" && id.Email != ""
}

// merge overlays non-empty fields from other onto id, giving other
// precedence — used to apply a higher-precedence level on top of a
// lower one.
func (id Identity) merge(other Identity) Identity {
	if other.Name != "" {
		id.Name = other.Name
	}
	if other.Email != "" {
		id.Email = other.Email
	}
	return id
}

// File is the on-disk shape of a single configuration file.
type File struct {
	User Identity `yaml:"user"`
}
