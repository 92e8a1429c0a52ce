package analyzer

import "fmt"

// ErrorKind tags the category of a document-level analysis failure, in
// the spirit of internal/errors' ErrorType but scoped to this package's
// own failure modes rather than a running program's runtime errors.
type ErrorKind string

const (
	ErrorBudgetExceeded ErrorKind = "budget-exceeded"
	ErrorParseFailure   ErrorKind = "parse-failure"
	ErrorInternal       ErrorKind = "internal"
)

// AnalysisError is a structured diagnostic surfaced alongside a
// DocumentResult (spec §6 "Emitted to callers: Document result ...
// Diagnostics"). It implements Go's error interface for printing, but it
// is returned as a value rather than as an error: callers collect these
// into a slice rather than short-circuiting on the first one, since one
// document can carry several independent diagnostics.
type AnalysisError struct {
	Kind    ErrorKind
	File    string
	Message string
}

func (e AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Message)
}

// NewBudgetExceeded reports that the document-level analysis timeout
// (spec §5, `analysis-timeout-ms`) elapsed before every method could be
// processed.
func NewBudgetExceeded(file, detail string) AnalysisError {
	return AnalysisError{Kind: ErrorBudgetExceeded, File: file, Message: detail}
}

// NewParseFailure wraps a frontend parse error so it can travel alongside
// structural diagnostics in the same Diagnostics slice.
func NewParseFailure(file, detail string) AnalysisError {
	return AnalysisError{Kind: ErrorParseFailure, File: file, Message: detail}
}
