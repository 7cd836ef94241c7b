package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/bg3icon-cli/internal/encoder"
	"github.com/AnyUserName/bg3icon-cli/internal/fade"
	"github.com/AnyUserName/bg3icon-cli/internal/naming"
	"github.com/AnyUserName/bg3icon-cli/internal/tier"
)

// Config holds the parameters of a pipeline that stay the same across runs.
type Config struct {
	Workers  int       // parallel source files; <= 0 means NumCPU
	Verbose  bool      // log per-file progress
	Log      io.Writer // defaults to os.Stderr
	Notifier Notifier  // optional, told about every finished run
	Encoder  encoder.Encoder
	Fade     fade.Spec // zero value means fade.Default
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg   Config
	enc   encoder.Encoder
	logMu sync.Mutex
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	if cfg.Encoder == nil {
		cfg.Encoder = encoder.Default()
	}
	if cfg.Fade == (fade.Spec{}) {
		cfg.Fade = fade.Default
	}
	return &Pipeline{
		cfg: cfg,
		enc: cfg.Encoder,
	}
}

// Workers returns the effective worker count.
func (p *Pipeline) Workers() int { return p.cfg.Workers }

// Run executes the batch. Per-unit failures never make Run return an
// error; they are listed in the result. A non-nil error means a
// pipeline-level fault, in which case the result has StatusFailed and
// carries the same error.
func (p *Pipeline) Run(job Job) (*Result, error) {
	job.Tiers = append([]tier.Tier(nil), job.Tiers...)
	if len(job.Tiers) == 0 {
		job.Tiers = tier.Default()
	}
	res := &Result{Job: job}

	fatal := func(err error) (*Result, error) {
		res.Status = StatusFailed
		res.Err = err
		p.logf("[bg3icon] error: %v\n", err)
		return res, err
	}

	if err := tier.Validate(job.Tiers); err != nil {
		return fatal(fmt.Errorf("tiers: %w", err))
	}

	// Step 1: Input directory must exist.
	info, err := os.Stat(job.InputDir)
	if err != nil {
		return fatal(&PipelineError{Kind: KindInputDirectoryFailure, Path: job.InputDir, Err: err})
	}
	if !info.IsDir() {
		return fatal(&PipelineError{Kind: KindInputDirectoryFailure, Path: job.InputDir, Err: errors.New("not a directory")})
	}

	// Step 2: One subdirectory per tier, all created before any write.
	for _, tr := range job.Tiers {
		dir := naming.TierDir(job.OutputDir, tr.ID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fatal(&PipelineError{Kind: KindDirectoryCreationFailure, Path: dir, Err: err})
		}
	}

	// Step 3: Scan for PNGs.
	sources, err := ScanPNGs(job.InputDir)
	if err != nil {
		return fatal(&PipelineError{Kind: KindInputDirectoryFailure, Path: job.InputDir, Err: err})
	}
	if len(sources) == 0 {
		res.Status = StatusNoEligibleFiles
		p.logf("[bg3icon] warning: no PNG files found in %s\n", job.InputDir)
		p.notify(job.OutputDir, false)
		return res, nil
	}
	res.Files = len(sources)

	if p.cfg.Verbose {
		p.logf("[bg3icon] found %d images\n", len(sources))
	}

	// Step 4: Process files in parallel. Each file owns its slot, so
	// the merged order never depends on completion order.
	results := make([][]Outcome, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				p.logf("[bg3icon] processing: %s\n", s.Name)
			}

			results[idx] = p.processFile(s, job)

			if p.cfg.Verbose {
				p.logf("[bg3icon] done: %s\n", s.Name)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 5: Collect outcomes.
	res.Outcomes = make([]Outcome, 0, len(sources)*len(job.Tiers))
	for _, r := range results {
		res.Outcomes = append(res.Outcomes, r...)
	}

	failed := res.Failed()
	for _, o := range failed {
		p.logf("[bg3icon] error: %v\n", o.Err)
	}
	if len(failed) == 0 {
		res.Status = StatusSuccess
	} else {
		res.Status = StatusCompletedWithErrors
		p.logf("[bg3icon] warning: %d of %d units had errors\n",
			len(failed), len(res.Outcomes))
	}

	p.notify(job.OutputDir, res.Status == StatusSuccess)
	return res, nil
}

func (p *Pipeline) notify(outputDir string, success bool) {
	if p.cfg.Notifier == nil {
		return
	}
	if err := p.cfg.Notifier.Notify(outputDir, success); err != nil {
		p.logf("[bg3icon] warning: notify: %v\n", err)
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	fmt.Fprintf(p.cfg.Log, format, args...)
}
