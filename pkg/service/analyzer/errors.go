package analyzer

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors distinguishing how an analysis attempt failed. Callers
// branch on these with errors.Is; the wrapped goerr values carry the exit
// code and diagnostic text.
var (
	// ErrLaunchFailed: the analyzer process could not be started at all
	// (missing interpreter or script).
	ErrLaunchFailed = goerr.New("failed to launch analyzer process")

	// ErrProcessFailed: the process started but exited non-zero.
	ErrProcessFailed = goerr.New("analyzer process failed")

	// ErrMalformedResponse: the process exited zero but its output was not a
	// usable analysis document.
	ErrMalformedResponse = goerr.New("malformed analyzer response")

	// ErrTimeout: the process produced no result within the deadline and was
	// killed.
	ErrTimeout = goerr.New("analyzer process timed out")
)
