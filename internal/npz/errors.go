package npz

import "fmt"

// FormatError reports a malformed archive or record: bad magic, truncated
// header, unparseable header dictionary, short payload. A load that hits a
// FormatError returns no archive at all.
type FormatError struct {
	Entry  string // archive entry name, empty for container-level faults
	Reason string
}

func (e *FormatError) Error() string {
	if e.Entry == "" {
		return "npz: " + e.Reason
	}

	return fmt.Sprintf("npz: entry %q: %s", e.Entry, e.Reason)
}

// UnsupportedDtypeError reports a well-formed record whose element type is
// not handled. The whole load aborts: an archive with an undecodable voice
// is worse than no archive.
type UnsupportedDtypeError struct {
	Entry string
	DType string
}

func (e *UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("npz: entry %q: unsupported dtype %q", e.Entry, e.DType)
}
