package gcode

import "fmt"

// MaxNameLen is the longest accepted artifact filename, extension
// included. The limit comes from the controller's FAT-style name table.
const MaxNameLen = 31

// NameError reports an artifact name that exceeds MaxNameLen. It is
// returned before anything is written, so a rejected name never leaves a
// partial file behind.
type NameError struct {
	Name  string
	Len   int
	Limit int
}

func (e *NameError) Error() string {
	return fmt.Sprintf("output name %q is %d characters; the limit is %d", e.Name, e.Len, e.Limit)
}

// CheckName validates an artifact filename against MaxNameLen.
func CheckName(name string) error {
	if len(name) > MaxNameLen {
		return &NameError{Name: name, Len: len(name), Limit: MaxNameLen}
	}
	return nil
}
