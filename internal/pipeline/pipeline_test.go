package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/bg3icon-cli/internal/encoder"
	"github.com/AnyUserName/bg3icon-cli/internal/fade"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := encoder.DecodePNGFile(path)
	require.NoError(t, err, "decode %s", path)
	return img
}

func alphaAt(img image.Image, x, y int) uint8 {
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}

func newTestPipeline(workers int) *Pipeline {
	return New(Config{Workers: workers, Log: io.Discard})
}

func TestRun_EndToEnd(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "sword.png"), gradient(512, 512))

	res, err := newTestPipeline(0).Run(NewJob(in, out, "ABC_"))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.Files)
	require.Len(t, res.Outcomes, 3)

	for _, tc := range []struct {
		tier  string
		size  int
		faded bool
	}{
		{"64x64", 64, false},
		{"144x144", 144, false},
		{"380x380", 380, true},
	} {
		img := readPNG(t, filepath.Join(out, tc.tier, "ABC_sword.png"))
		assert.Equal(t, image.Rect(0, 0, tc.size, tc.size), img.Bounds(), tc.tier)

		if !tc.faded {
			assert.Equal(t, uint8(255), alphaAt(img, tc.size/2, tc.size-1), "%s bottom row", tc.tier)
			continue
		}
		start := fade.Default.Start(tc.size)
		for y := 0; y <= start; y++ {
			require.Equal(t, uint8(255), alphaAt(img, 190, y), "top row %d", y)
		}
		for x := 0; x < tc.size; x++ {
			require.Equal(t, uint8(0), alphaAt(img, x, tc.size-1), "bottom row x=%d", x)
		}
	}

	for _, o := range res.Outcomes {
		assert.True(t, o.OK())
		assert.Equal(t, o.Tier == "380x380", o.Faded, o.Tier)
		assert.Positive(t, o.Size)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "axe.png"), gradient(200, 200))
	writePNG(t, filepath.Join(in, "bow.png"), gradient(300, 150))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png at all"), 0o644))

	res, err := newTestPipeline(2).Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedWithErrors, res.Status)
	assert.Equal(t, 3, res.Files)
	require.Len(t, res.Outcomes, 9)

	failed := res.Failed()
	require.Len(t, failed, 3)
	perTier := map[string]int{}
	for _, o := range failed {
		assert.Equal(t, "broken.png", o.File)
		assert.Equal(t, KindSourceUnreadable, o.Err.Kind)
		assert.Equal(t, o.Tier, o.Err.Tier)
		perTier[o.Tier]++
	}
	assert.Equal(t, map[string]int{"144x144": 1, "380x380": 1, "64x64": 1}, perTier)
	assert.Equal(t, 6, res.Succeeded())

	for _, name := range []string{"axe.png", "bow.png"} {
		for _, tr := range res.Job.Tiers {
			img := readPNG(t, filepath.Join(out, tr.ID, name))
			assert.Equal(t, tr.Width, img.Bounds().Dx())
			assert.Equal(t, tr.Height, img.Bounds().Dy())
		}
	}
	_, err = os.Stat(filepath.Join(out, "64x64", "broken.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_NoEligibleFiles(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(in, "nested.png"), 0o755))

	var notified []bool
	p := New(Config{Log: io.Discard, Notifier: NotifierFunc(func(_ string, ok bool) error {
		notified = append(notified, ok)
		return nil
	})})

	res, err := p.Run(NewJob(in, out, "X_"))
	require.NoError(t, err)
	assert.Equal(t, StatusNoEligibleFiles, res.Status)
	assert.Empty(t, res.Outcomes)
	assert.Equal(t, []bool{false}, notified)

	for _, tr := range res.Job.Tiers {
		entries, err := os.ReadDir(filepath.Join(out, tr.ID))
		require.NoError(t, err, "tier dir %s should exist", tr.ID)
		assert.Empty(t, entries, tr.ID)
	}
}

func TestRun_Idempotent(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "helm.png"), gradient(256, 256))
	job := NewJob(in, out, "R_")

	_, err := newTestPipeline(0).Run(job)
	require.NoError(t, err)
	first := map[string][]byte{}
	for _, tr := range job.Tiers {
		p := filepath.Join(out, tr.ID, "R_helm.png")
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		first[p] = data
	}

	_, err = newTestPipeline(0).Run(job)
	require.NoError(t, err)
	for p, data := range first {
		again, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, again), "%s changed between runs", p)
	}
}

func TestRun_OrderIndependentOfWorkers(t *testing.T) {
	in := t.TempDir()
	for i := 0; i < 6; i++ {
		writePNG(t, filepath.Join(in, fmt.Sprintf("icon_%d.png", 5-i)), gradient(64+i*20, 64))
	}

	summarize := func(workers int) []string {
		res, err := newTestPipeline(workers).Run(NewJob(in, t.TempDir(), "P_"))
		require.NoError(t, err)
		var s []string
		for _, o := range res.Outcomes {
			s = append(s, fmt.Sprintf("%s|%s|%d|%v", o.File, o.Tier, o.Size, o.Faded))
		}
		return s
	}

	serial := summarize(1)
	require.Len(t, serial, 18)
	assert.Equal(t, serial, summarize(8))
	assert.Equal(t, "icon_0.png|144x144", serial[0][:len("icon_0.png|144x144")])
}

func TestRun_CaseInsensitiveExtension(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "Shield.PNG"), gradient(100, 100))
	require.NoError(t, os.WriteFile(filepath.Join(in, "photo.jpg"), []byte{0xff, 0xd8, 0xff}, 0o644))

	res, err := newTestPipeline(1).Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.Files)
	_, err = os.Stat(filepath.Join(out, "64x64", "Shield.PNG"))
	assert.NoError(t, err)
}

func TestRun_SourceUntouched(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	src := filepath.Join(in, "ring.png")
	writePNG(t, src, gradient(128, 128))
	before, err := os.ReadFile(src)
	require.NoError(t, err)

	_, err = newTestPipeline(0).Run(NewJob(in, out, ""))
	require.NoError(t, err)

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_MissingInputDir(t *testing.T) {
	out := t.TempDir()
	res, err := newTestPipeline(0).Run(NewJob(filepath.Join(out, "missing"), out, ""))
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, err, res.Err)

	var pe *PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindInputDirectoryFailure, pe.Kind)
	assert.True(t, pe.Kind.Fatal())
}

func TestRun_DirectoryCreationFailure(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), gradient(32, 32))
	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	notified := false
	p := New(Config{Log: io.Discard, Notifier: NotifierFunc(func(string, bool) error {
		notified = true
		return nil
	})})

	res, err := p.Run(NewJob(in, blocker, ""))
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Outcomes)
	assert.False(t, notified)

	var pe *PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindDirectoryCreationFailure, pe.Kind)
}

func TestRun_OutputWriteFailureIsolated(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "gem.png"), gradient(96, 96))
	// A directory squatting on the output path makes that one write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "64x64", "gem.png"), 0o755))

	res, err := newTestPipeline(0).Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedWithErrors, res.Status)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "64x64", failed[0].Tier)
	assert.Equal(t, KindOutputWriteFailure, failed[0].Err.Kind)

	readPNG(t, filepath.Join(out, "144x144", "gem.png"))
	readPNG(t, filepath.Join(out, "380x380", "gem.png"))
}

// opaqueOnlyEncoder refuses images with any transparency, which only the
// fade step produces for opaque sources.
type opaqueOnlyEncoder struct{ encoder.PNGEncoder }

func (e *opaqueOnlyEncoder) Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(img, x, y) < 255 {
				return nil, errors.New("transparency not allowed")
			}
		}
	}
	return e.PNGEncoder.Encode(img)
}

func TestRun_FadeFailureIsolated(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "cloak.png"), gradient(160, 160))

	p := New(Config{Log: io.Discard, Encoder: &opaqueOnlyEncoder{}})
	res, err := p.Run(NewJob(in, out, ""))
	require.NoError(t, err)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "380x380", failed[0].Tier)
	assert.Equal(t, KindFadeFailure, failed[0].Err.Kind)
	assert.Equal(t, 2, res.Succeeded())
}

func TestRun_NotifierOnSuccess(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), gradient(32, 32))

	var gotDir string
	var gotOK bool
	p := New(Config{Log: io.Discard, Notifier: NotifierFunc(func(dir string, ok bool) error {
		gotDir, gotOK = dir, ok
		return errors.New("no file browser")
	})})

	res, err := p.Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status, "notifier errors must not change the result")
	assert.Equal(t, out, gotDir)
	assert.True(t, gotOK)
}

func TestRun_NotifierOnPartialFailure(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.png"), nil, 0o644))

	gotOK := true
	p := New(Config{Log: io.Discard, Notifier: NotifierFunc(func(_ string, ok bool) error {
		gotOK = ok
		return nil
	})})

	res, err := p.Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedWithErrors, res.Status)
	assert.False(t, gotOK)
}

func TestRun_VerboseLogging(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), gradient(32, 32))

	var buf bytes.Buffer
	_, err := New(Config{Verbose: true, Log: &buf}).Run(NewJob(in, out, ""))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[bg3icon] found 1 images")
	assert.Contains(t, buf.String(), "[bg3icon] done: a.png")
}

func TestUnitError_Unwrap(t *testing.T) {
	inner := os.ErrPermission
	err := error(&UnitError{Kind: KindOutputWriteFailure, File: "a.png", Tier: "64x64", Err: inner})
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "a.png@64x64")
	assert.Contains(t, err.Error(), "OutputWriteFailure")
}
