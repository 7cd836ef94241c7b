// Package naming derives output file names and locations. Everything here
// is pure: no file system access.
package naming

import "path/filepath"

// FileName returns the output file name for a source file: the prefix
// followed by the original base name, extension included.
func FileName(prefix, original string) string {
	return prefix + filepath.Base(original)
}

// TierDir returns the subdirectory of outputRoot that holds a tier.
func TierDir(outputRoot, tierID string) string {
	return filepath.Join(outputRoot, tierID)
}

// OutputPath returns outputRoot/tierID/<prefix><original>. Identical
// inputs always map to the same path, so reruns overwrite earlier output.
func OutputPath(outputRoot, tierID, prefix, original string) string {
	return filepath.Join(TierDir(outputRoot, tierID), FileName(prefix, original))
}

// RelPath is OutputPath relative to the output root, with forward slashes.
func RelPath(tierID, prefix, original string) string {
	return filepath.ToSlash(filepath.Join(tierID, FileName(prefix, original)))
}
