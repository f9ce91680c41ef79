// # internal/output/writer.go

// Package output writes generated stub files next to their sources.
package output

import (
	"errors"
	"io/fs"
	"os"
)

const EditWarning = "THIS FILE IS AUTOMATICALLY GENERATED, DO NOT EDIT MANUALLY."

// StubPath returns the companion stub path for a source file
// (module.py -> module.pyi).
func StubPath(source string) string {
	return source + "i"
}

// WriteStub writes the stub for a source file and returns the stub
// path and whether a file was written. Empty stub text means "no
// output": any stale stub from an earlier run is removed instead.
func WriteStub(source, text string) (string, bool, error) {
	dest := StubPath(source)

	if text == "" {
		if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return dest, false, err
		}
		return dest, false, nil
	}

	content := "# " + EditWarning + "\n\n" + text
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return dest, false, err
	}
	return dest, true, nil
}
