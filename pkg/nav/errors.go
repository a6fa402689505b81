package nav

import "fmt"

// MalformedTreeError reports a navigation declaration that violates the
// tree invariants. It is fatal at startup: the menu cannot be rendered.
type MalformedTreeError struct {
	// Path locates the offending node by labels, e.g. "/Tables/Requests".
	// Unlabeled nodes appear by index, e.g. "/Tables/[1]".
	Path string

	// Reason describes the violated invariant.
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed navigation tree at %s: %s", e.Path, e.Reason)
}

func malformed(path, format string, args ...any) error {
	return &MalformedTreeError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
