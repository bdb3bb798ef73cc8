package caseanalysis

import (
	"errors"
	"fmt"
)

type ExtractionError struct {
	Doc    string
	Reason string
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("%s document: %s", e.Doc, e.Reason) }

type StrategySelectionError struct {
	Reason string
}

func (e *StrategySelectionError) Error() string {
	return fmt.Sprintf("strategy catalog misconfigured: %s", e.Reason)
}

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func StageNameFromError(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "pipeline"
}

func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
