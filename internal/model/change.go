package model

// Change is a single file entry of a merge request diff.
type Change struct {
	OldPath string
	NewPath string
	Diff    string
}

// Paths returns the distinct paths touched by the change.
func (c Change) Paths() []string {
	if c.OldPath == c.NewPath || c.OldPath == "" {
		return []string{c.NewPath}
	}
	if c.NewPath == "" {
		return []string{c.OldPath}
	}
	return []string{c.OldPath, c.NewPath}
}
