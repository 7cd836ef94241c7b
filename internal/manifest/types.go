package manifest

// FileName is where the CLI writes the manifest inside the output directory.
const FileName = "bg3icon.manifest.json"

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// Manifest records what one batch run wrote.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	InputDir    string     `json:"input_dir"`
	Prefix      string     `json:"prefix"`
	Status      string     `json:"status"`
	Tiers       []TierInfo `json:"tiers"`
	Icons       []Icon     `json:"icons"`
	Failures    []Failure  `json:"failures,omitempty"`
	Stats       Stats      `json:"stats"`
}

// TierInfo describes one output tier.
type TierInfo struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Fade   bool   `json:"fade,omitempty"`
}

// Icon is one written output file.
type Icon struct {
	Source string `json:"source"` // source file name
	Tier   string `json:"tier"`
	Path   string `json:"path"` // relative to the manifest, forward slashes
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // xxhash64, 16 hex chars
	Faded  bool   `json:"faded,omitempty"`
}

// Failure is one unit that did not produce an icon.
type Failure struct {
	Source string `json:"source"`
	Tier   string `json:"tier"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalSources  int   `json:"total_sources"`
	TotalIcons    int   `json:"total_icons"`
	TotalFailures int   `json:"total_failures"`
	TotalBytes    int64 `json:"total_bytes"`
}
