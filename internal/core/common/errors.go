package common

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every pipeline stage. Callers classify with errors.Is.
var (
	// ErrQuery is a transport or parse failure talking to the knowledge graph.
	ErrQuery = errors.New("knowledge graph query failed")
	// ErrEmptyResult is a well-formed query that matched zero rows.
	ErrEmptyResult = errors.New("query returned no results")
	// ErrUnsupportedAnswerType means a range is neither numeric, a year, nor a known class.
	ErrUnsupportedAnswerType = errors.New("unsupported answer type")
	// ErrRankingService means the ranking collaborator was unreachable or answered garbage.
	ErrRankingService = errors.New("ranking service failed")
	// ErrStagePanic means a stage panicked; the attempt is discarded like any other failure.
	ErrStagePanic = errors.New("pipeline stage panicked")
	// ErrAttemptsExhausted is returned once the orchestrator gives up.
	ErrAttemptsExhausted = errors.New("question generation attempts exhausted")
)

// Stage names one step of the question pipeline.
type Stage string

const (
	StageSelectEntity        Stage = "select_entity"
	StageResolveLabel        Stage = "resolve_label"
	StageSelectProperty      Stage = "select_property"
	StageResolveMetadata     Stage = "resolve_metadata"
	StageResolveAnswer       Stage = "resolve_answer"
	StageGenerateDistractors Stage = "generate_distractors"
)

// StageError records the stage at which a pipeline attempt failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the failed stage recorded in err, or "" if none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Empty wraps ErrEmptyResult with what was being looked up.
func Empty(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrEmptyResult)
}
