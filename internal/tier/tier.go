package tier

import "fmt"

// Tier is a named target output resolution. Each tier gets its own
// output subdirectory named after ID.
type Tier struct {
	ID     string
	Width  int
	Height int
	Fade   bool // apply the vertical alpha fade after the resize write
}

// String returns the tier identifier.
func (t Tier) String() string { return t.ID }

// Built-in tiers, in the order the batch processes them.
var tiers = []Tier{
	{ID: "144x144", Width: 144, Height: 144},
	{ID: "380x380", Width: 380, Height: 380, Fade: true},
	{ID: "64x64", Width: 64, Height: 64},
}

// Default returns a copy of the fixed tier set.
func Default() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Get returns the built-in tier with the given identifier.
func Get(id string) (Tier, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// FadeApplicable reports whether the tier with the given identifier is
// faded. Unknown identifiers are never faded.
func FadeApplicable(id string) bool {
	t, ok := Get(id)
	return ok && t.Fade
}

// Validate checks a tier set for empty or duplicate identifiers and
// non-positive dimensions.
func Validate(set []Tier) error {
	if len(set) == 0 {
		return fmt.Errorf("no tiers")
	}
	seen := map[string]bool{}
	for _, t := range set {
		if t.ID == "" {
			return fmt.Errorf("tier with empty id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tier %q", t.ID)
		}
		seen[t.ID] = true
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("tier %q: invalid dimensions %dx%d", t.ID, t.Width, t.Height)
		}
	}
	return nil
}
