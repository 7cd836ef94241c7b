package pipeline

import (
	"fmt"
	"image"
	"os"

	"github.com/AnyUserName/bg3icon-cli/internal/encoder"
	"github.com/AnyUserName/bg3icon-cli/internal/naming"
	"github.com/AnyUserName/bg3icon-cli/internal/resize"
	"github.com/AnyUserName/bg3icon-cli/internal/tier"
)

// processFile handles one source image across every tier of the job.
// The returned slice has one outcome per tier, in job order. The source is
// decoded once and only read from.
func (p *Pipeline) processFile(src Source, job Job) []Outcome {
	outcomes := make([]Outcome, len(job.Tiers))
	for i, tr := range job.Tiers {
		outcomes[i] = Outcome{
			File:   src.Name,
			Tier:   tr.ID,
			Path:   naming.OutputPath(job.OutputDir, tr.ID, job.Prefix, src.Name),
			Width:  tr.Width,
			Height: tr.Height,
		}
	}

	img, err := encoder.DecodePNGFile(src.AbsPath)
	if err != nil {
		// An unreadable source fails every one of its units.
		for i := range outcomes {
			outcomes[i].Err = &UnitError{
				Kind: KindSourceUnreadable,
				File: src.Name,
				Tier: outcomes[i].Tier,
				Err:  err,
			}
		}
		return outcomes
	}

	for i, tr := range job.Tiers {
		p.processUnit(img, tr, &outcomes[i])
	}
	return outcomes
}

// processUnit resizes img to one tier, writes it, and fades the written
// file if the tier asks for it. Failures are stored on out.
func (p *Pipeline) processUnit(img image.Image, tr tier.Tier, out *Outcome) {
	fail := func(kind Kind, err error) {
		out.Err = &UnitError{Kind: kind, File: out.File, Tier: out.Tier, Err: err}
	}

	resized, err := resize.Resize(img, tr.Width, tr.Height)
	if err != nil {
		fail(KindResizeFailure, err)
		return
	}

	data, err := p.enc.Encode(resized)
	if err != nil {
		fail(KindOutputWriteFailure, fmt.Errorf("encode %s: %w", p.enc.Format(), err))
		return
	}
	if err := os.WriteFile(out.Path, data, 0o644); err != nil {
		fail(KindOutputWriteFailure, fmt.Errorf("write %s: %w", out.Path, err))
		return
	}
	out.Size = int64(len(data))

	if !tr.Fade {
		return
	}
	size, err := p.fadeFile(out.Path)
	if err != nil {
		fail(KindFadeFailure, err)
		return
	}
	out.Size = size
	out.Faded = true
}

// fadeFile re-reads a freshly written tier image, applies the fade curve
// and writes it back in place. Returns the new file size.
func (p *Pipeline) fadeFile(path string) (int64, error) {
	img, err := encoder.DecodePNGFile(path)
	if err != nil {
		return 0, fmt.Errorf("reopen %s: %w", path, err)
	}

	faded := p.cfg.Fade.Apply(img)

	data, err := p.enc.Encode(faded)
	if err != nil {
		return 0, fmt.Errorf("encode faded %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write faded %s: %w", path, err)
	}
	return int64(len(data)), nil
}
