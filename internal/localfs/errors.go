package localfs

import (
	"fmt"
	"os"
)

// AccessError reports a permission failure reading a directory or file.
// Presentation shows an empty listing plus a passive diagnostic; only a
// root-level AccessError reaches the host completion callback.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access denied: %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// IOError reports any other I/O fault: entry vanished mid-read, bad file
// descriptor, and so on. Handled the same way as AccessError.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read failed: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// classifyError wraps a raw filesystem error into the listing taxonomy.
func classifyError(path string, err error) error {
	if os.IsPermission(err) {
		return &AccessError{Path: path, Err: err}
	}
	return &IOError{Path: path, Err: err}
}
