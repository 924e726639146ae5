package app

import (
	"bytes"
	"fmt"
	"os"
)

// WriteFile writes the calendar to path in the given format. An existing file
// is kept as path+BackupSuffix; the new content goes to a temp file first and
// is then renamed into place.
func WriteFile(path string, cal *Calendar, format string) error {
	var buf bytes.Buffer
	if err := Export(&buf, cal, format); err != nil {
		return err
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmpFile := path + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}

	// Create backup
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		if err := copyFile(path, path+BackupSuffix); err != nil {
			_ = os.Remove(tmpFile)
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, FilePermissions)
}
