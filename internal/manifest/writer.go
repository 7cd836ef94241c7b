package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/bg3icon-cli/internal/hasher"
	"github.com/AnyUserName/bg3icon-cli/internal/naming"
	"github.com/AnyUserName/bg3icon-cli/internal/pipeline"
)

// New creates an empty manifest with defaults.
func New(inputDir, prefix string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		InputDir:    inputDir,
		Prefix:      prefix,
	}
}

// FromResult builds a manifest from a finished run, hashing every file
// the run wrote.
func FromResult(res *pipeline.Result) (*Manifest, error) {
	m := New(res.Job.InputDir, res.Job.Prefix)
	m.Status = res.Status.String()
	for _, tr := range res.Job.Tiers {
		m.Tiers = append(m.Tiers, TierInfo{ID: tr.ID, Width: tr.Width, Height: tr.Height, Fade: tr.Fade})
	}

	for _, o := range res.Outcomes {
		if !o.OK() {
			m.Failures = append(m.Failures, Failure{
				Source: o.File,
				Tier:   o.Tier,
				Kind:   o.Err.Kind.String(),
				Error:  o.Err.Err.Error(),
			})
			continue
		}
		hash, err := hasher.SumFile(o.Path)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", o.Path, err)
		}
		m.Icons = append(m.Icons, Icon{
			Source: o.File,
			Tier:   o.Tier,
			Path:   naming.RelPath(o.Tier, res.Job.Prefix, o.File),
			Width:  o.Width,
			Height: o.Height,
			Size:   o.Size,
			Hash:   hash,
			Faded:  o.Faded,
		})
	}
	m.Stats.TotalSources = res.Files
	m.ComputeStats()
	return m, nil
}

// ComputeStats recalculates icon and failure totals. TotalSources is left
// as set by the caller.
func (m *Manifest) ComputeStats() {
	m.Stats.TotalIcons = len(m.Icons)
	m.Stats.TotalFailures = len(m.Failures)
	m.Stats.TotalBytes = 0
	for _, ic := range m.Icons {
		m.Stats.TotalBytes += ic.Size
	}
}

// WriteJSON serializes the manifest to a JSON file.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest. path may be the manifest file or the output
// directory containing it.
func Read(path string) (*Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", fmt.Errorf("parse manifest: %w", err)
	}
	return &m, path, nil
}
