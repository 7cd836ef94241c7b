package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/bg3icon-cli/internal/hasher"
)

// Validate checks a manifest against the files under baseDir and returns
// one message per problem found.
func Validate(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	tiers := map[string]TierInfo{}
	for _, tr := range m.Tiers {
		tiers[tr.ID] = tr
	}

	seenPaths := map[string]bool{}
	for i, ic := range m.Icons {
		tr, ok := tiers[ic.Tier]
		if !ok {
			errs = append(errs, fmt.Sprintf("icon[%d] %s: unknown tier %q", i, ic.Source, ic.Tier))
		} else if ic.Width != tr.Width || ic.Height != tr.Height {
			errs = append(errs, fmt.Sprintf("icon[%d] %s: size %dx%d does not match tier %s",
				i, ic.Source, ic.Width, ic.Height, tr.ID))
		}
		if ok && ic.Faded != tr.Fade {
			errs = append(errs, fmt.Sprintf("icon[%d] %s: faded=%v on tier %s", i, ic.Source, ic.Faded, tr.ID))
		}
		if ic.Path == "" {
			errs = append(errs, fmt.Sprintf("icon[%d] %s: missing path", i, ic.Source))
			continue
		}
		if seenPaths[ic.Path] {
			errs = append(errs, fmt.Sprintf("icon[%d]: duplicate path %q", i, ic.Path))
		}
		seenPaths[ic.Path] = true

		fullPath := filepath.Join(baseDir, filepath.FromSlash(ic.Path))
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("icon[%d]: file not found: %s", i, ic.Path))
			continue
		}
		if info.Size() != ic.Size {
			errs = append(errs, fmt.Sprintf("icon[%d]: size mismatch: manifest=%d, disk=%d",
				i, ic.Size, info.Size()))
		}
		if hash, err := hasher.SumFile(fullPath); err != nil {
			errs = append(errs, fmt.Sprintf("icon[%d]: hash %s: %v", i, ic.Path, err))
		} else if hash != ic.Hash {
			errs = append(errs, fmt.Sprintf("icon[%d]: hash mismatch for %s", i, ic.Path))
		}
	}

	if m.Stats.TotalIcons != len(m.Icons) {
		errs = append(errs, fmt.Sprintf("stats.total_icons mismatch: %d != %d", m.Stats.TotalIcons, len(m.Icons)))
	}
	if m.Stats.TotalFailures != len(m.Failures) {
		errs = append(errs, fmt.Sprintf("stats.total_failures mismatch: %d != %d", m.Stats.TotalFailures, len(m.Failures)))
	}

	return errs
}
