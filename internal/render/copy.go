package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/appgen-labs/appgen/internal/platform"
)

// dirPerm is applied to every directory created under the destination.
const dirPerm os.FileMode = 0755

// copyFile copies a single file from src to dst, preserving permissions and
// modification time. A symlinked src is followed and its target copied.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := writeFile(dst, data, srcInfo.Mode()); err != nil {
		return err
	}
	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}

// writeFile writes data to dst with exactly mode's permission bits, creating
// parent directories as needed.
func writeFile(dst string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	return platform.WriteFile(dst, data, mode.Perm())
}
