package tier

import "testing"

func TestDefault_Dimensions(t *testing.T) {
	want := map[string][2]int{
		"144x144": {144, 144},
		"380x380": {380, 380},
		"64x64":   {64, 64},
	}
	got := Default()
	if len(got) != len(want) {
		t.Fatalf("tiers: got %d, want %d", len(got), len(want))
	}
	for _, tr := range got {
		dims, ok := want[tr.ID]
		if !ok {
			t.Errorf("unexpected tier %q", tr.ID)
			continue
		}
		if tr.Width != dims[0] || tr.Height != dims[1] {
			t.Errorf("tier %s: got %dx%d", tr.ID, tr.Width, tr.Height)
		}
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a[0].Width = 1
	if b := Default(); b[0].Width == 1 {
		t.Error("Default exposes the shared table")
	}
}

func TestFadeApplicable(t *testing.T) {
	cases := map[string]bool{
		"380x380": true,
		"144x144": false,
		"64x64":   false,
		"512x512": false,
		"":        false,
	}
	for id, want := range cases {
		if got := FadeApplicable(id); got != want {
			t.Errorf("FadeApplicable(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default tiers invalid: %v", err)
	}
	bad := [][]Tier{
		nil,
		{{ID: "", Width: 1, Height: 1}},
		{{ID: "a", Width: 1, Height: 1}, {ID: "a", Width: 2, Height: 2}},
		{{ID: "zero", Width: 0, Height: 10}},
	}
	for i, set := range bad {
		if err := Validate(set); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
