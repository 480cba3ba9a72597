package objects

import "fmt"

// FileMode is the permission/type tag carried by a tree entry.
type FileMode uint32

const (
	ModeDirectory  FileMode = 0o040000
	ModeRegular    FileMode = 0o100644
	ModeExecutable FileMode = 0o100755
)

func (m FileMode) IsDirectory() bool  { return m == ModeDirectory }
func (m FileMode) IsExecutable() bool { return m == ModeExecutable }
func (m FileMode) IsRegular() bool    { return m == ModeRegular || m == ModeExecutable }

// String renders the mode the way git writes it into a tree entry: octal,
// with no leading zero for directories (git emits "40000", not "040000",
// on the wire, even though the index stores the zero-padded form).
func (m FileMode) String() string {
	if m == ModeDirectory {
		return "40000"
	}
	return fmt.Sprintf("%06o", uint32(m))
}

// ParseFileMode accepts both the 5-digit wire form and the 6-digit
// zero-padded form so tree parsing tolerates either.
func ParseFileMode(s string) (FileMode, error) {
	var v uint32
	if _, err := fmt.Sscanf(s, "%o", &v); err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	mode := FileMode(v)
	switch mode {
	case ModeDirectory, ModeRegular, ModeExecutable:
		return mode, nil
	default:
		return 0, fmt.Errorf("unsupported file mode %q", s)
	}
}
