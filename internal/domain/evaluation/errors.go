package evaluation

import "errors"

// Evaluation domain errors
var (
	ErrEvaluationNotFound = errors.New("final evaluation not found")
	ErrAlreadyGraded      = errors.New("final evaluation has already been graded")
)
