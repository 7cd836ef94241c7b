package pipeline

import (
	"github.com/AnyUserName/bg3icon-cli/internal/tier"
)

// Job is one invocation of the batch: where to read, where to write, and
// what to prefix output names with. Treat it as immutable once Run starts.
type Job struct {
	InputDir  string
	OutputDir string
	Prefix    string // may be empty
	Tiers     []tier.Tier
}

// NewJob returns a Job over the built-in tier set.
func NewJob(inputDir, outputDir, prefix string) Job {
	return Job{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Prefix:    prefix,
		Tiers:     tier.Default(),
	}
}

// Status is the overall outcome of a run.
type Status int

const (
	// StatusSuccess: every unit succeeded.
	StatusSuccess Status = iota
	// StatusNoEligibleFiles: the input directory holds no PNG files.
	StatusNoEligibleFiles
	// StatusCompletedWithErrors: the run finished but at least one unit failed.
	StatusCompletedWithErrors
	// StatusFailed: a pipeline-level fault stopped the run.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoEligibleFiles:
		return "no eligible files"
	case StatusCompletedWithErrors:
		return "completed with errors"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one (file, tier) unit.
type Outcome struct {
	File   string // source file name, no directory
	Tier   string
	Path   string // output path
	Width  int
	Height int
	Size   int64 // bytes written, final (post-fade) file
	Faded  bool
	Err    *UnitError
}

// OK reports whether the unit succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Result is everything a run reports back to its caller.
type Result struct {
	Job      Job
	Status   Status
	Files    int       // eligible source files found
	Outcomes []Outcome // one per (file, tier), files sorted by name, tiers in job order
	Err      error     // set when Status is StatusFailed
}

// Failed returns the outcomes of failed units.
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Succeeded returns the number of successful units.
func (r *Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Notifier is told where the output went once a run finishes.
// success is true only when every unit succeeded. Implementations are
// best effort; their errors are logged and otherwise ignored.
type Notifier interface {
	Notify(outputDir string, success bool) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(outputDir string, success bool) error

func (f NotifierFunc) Notify(outputDir string, success bool) error {
	return f(outputDir, success)
}
