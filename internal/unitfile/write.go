package unitfile

import (
	"errors"
	"io/fs"
	"os"
)

// WriteFile persists the serialized document at path, creating or
// truncating the file. The file handle is released on every path out,
// including write failures. Failures are reported as *WriteError wrapping
// the underlying I/O error.
func (d *Document) WriteFile(path string) error {
	return WriteText(path, d.String())
}

// WriteText writes already-rendered unit file text to path with the same
// guarantees as Document.WriteFile.
func WriteText(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &WriteError{Path: path, Cause: err}
	}
	_, writeErr := f.WriteString(content)
	closeErr := f.Close()
	if writeErr != nil {
		return &WriteError{Path: path, Cause: writeErr}
	}
	if closeErr != nil {
		return &WriteError{Path: path, Cause: closeErr}
	}
	return nil
}

// Remove deletes the unit file at path. A missing file is an error only
// when requireExists is set, reported as *NotFoundError; otherwise removing
// an already-absent path is a no-op.
func Remove(path string, requireExists bool) error {
	err := os.Remove(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if requireExists {
			return &NotFoundError{Path: path}
		}
		return nil
	}
	return err
}
