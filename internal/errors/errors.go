// Package errors holds the sentinel errors surfaced by the pipeline.
// Stages wrap them with context via fmt.Errorf("...: %w", err); callers
// match with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers importing this package do not also need the standard one.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

var (
	ErrEmptyCorpus       = fmt.Errorf("no documents survived filtering")
	ErrEmptyVocabulary   = fmt.Errorf("vocabulary window is empty")
	ErrSplitTooLarge     = fmt.Errorf("train and test sizes exceed available rows")
	ErrDimensionMismatch = fmt.Errorf("embedding dimension mismatch")
	ErrUnknownStrategy   = fmt.Errorf("unknown tokenization strategy")
	ErrUnknownSource     = fmt.Errorf("unknown corpus source")
	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
)
