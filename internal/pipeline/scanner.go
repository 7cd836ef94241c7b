package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// Name is the file's base name, extension included.
	Name string
	// Size is the file size in bytes.
	Size int64
}

// IsPNGName reports whether a file name has a .png extension, in any case.
func IsPNGName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".png")
}

// ScanPNGs lists the PNG files directly inside inputDir, sorted by name.
// Subdirectories are not descended into.
func ScanPNGs(inputDir string) ([]Source, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() || !IsPNGName(e.Name()) {
			continue
		}
		path := filepath.Join(inputDir, e.Name())

		// Follow symlinks; skip anything that does not end at a regular file.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		sources = append(sources, Source{
			AbsPath: path,
			Name:    e.Name(),
			Size:    info.Size(),
		})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}
