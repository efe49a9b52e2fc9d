package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight record writes. Keys and the watcher skip
// files carrying it.
const TempFilePrefix = "pinstack-tmp-"

// writeFileAtomic replaces the record at filename through a temp file in the
// same directory followed by a rename. A crash mid-write leaves the previous
// record intact, never a torn one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	name := tmp.Name()

	if err := commit(tmp, data); err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod temp record: %w", err)
	}
	if err := os.Rename(name, filename); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace record %s: %w", filename, err)
	}
	return nil
}

// commit flushes data all the way to disk and closes the file.
func commit(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
