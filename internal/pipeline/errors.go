package pipeline

import "fmt"

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota

	// Per-unit kinds. Recorded against one (file, tier) pair; the batch
	// carries on.
	KindSourceUnreadable
	KindResizeFailure
	KindFadeFailure
	KindOutputWriteFailure

	// Pipeline-level kinds. The run stops immediately.
	KindDirectoryCreationFailure
	KindInputDirectoryFailure

	// KindNoEligibleFiles is a status, never returned as an error.
	KindNoEligibleFiles
)

func (k Kind) String() string {
	switch k {
	case KindSourceUnreadable:
		return "SourceUnreadable"
	case KindResizeFailure:
		return "ResizeFailure"
	case KindFadeFailure:
		return "FadeFailure"
	case KindOutputWriteFailure:
		return "OutputWriteFailure"
	case KindDirectoryCreationFailure:
		return "DirectoryCreationFailure"
	case KindInputDirectoryFailure:
		return "InputDirectoryFailure"
	case KindNoEligibleFiles:
		return "NoEligibleFiles"
	default:
		return "Unknown"
	}
}

// Fatal reports whether a failure of this kind aborts the whole run.
func (k Kind) Fatal() bool {
	return k == KindDirectoryCreationFailure || k == KindInputDirectoryFailure
}

// UnitError is the failure of a single (file, tier) unit.
type UnitError struct {
	Kind Kind
	File string // source file name
	Tier string // tier identifier
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s@%s: %s: %v", e.File, e.Tier, e.Kind, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// PipelineError is a failure that stops the run before or while setting
// up the output tree.
type PipelineError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
