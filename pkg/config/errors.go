package config

import "github.com/go-grit/grit/pkg/coreerr"

// ErrNoIdentity is returned by Manager.Identity when the identity merged
// from the system, user, and repository config files still lacks
// user.name or user.email.
var ErrNoIdentity = coreerr.Fmt(coreerr.Invariant, "identity",
	"no identity configured: set it with 'grit config user.name <name>' and 'grit config user.email <email>'")
