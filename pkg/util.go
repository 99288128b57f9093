package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// EnsureDir creates the directory (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	exists, err := PathExists(dir, true)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteFileAtomic writes through a temp file in the destination directory and
// renames it into place, so a failed write never leaves a partial file behind.
// The writeFn gets the open temp file.
func WriteFileAtomic(path string, writeFn func(f *os.File) error) (err error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Combine(err, removeIfExists(tmpName))
		}
	}()

	if err := writeFn(tmp); err != nil {
		return multierr.Combine(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
