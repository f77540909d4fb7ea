// Package dataset loads the ordered list of images a benchmark run covers.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validExtensions mirrors what the recognition service can decode.
var validExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

// Scan returns the image files in dir as full paths, in lexical order.
// Subdirectories and non-image files are skipped. The returned slice is the
// immutable dataset for a run; a missing directory is an error, an empty one
// yields an empty slice for the caller to reject.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !validExtensions[ext] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}
