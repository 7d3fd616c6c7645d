package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

// DefaultTimeout bounds a single analysis call. The legacy system waited
// forever; a stuck analyzer must not pin a request goroutine.
const DefaultTimeout = 60 * time.Second

// Subprocess invokes the analyzer as an isolated external process per call:
// the snapshot is passed as a single JSON argument, and the process must emit
// exactly one JSON document on stdout. Stderr is advisory and only logged.
// Each call runs its own process instance, so concurrent analyses never
// serialize each other.
type Subprocess struct {
	command []string
	timeout time.Duration
}

var _ Service = &Subprocess{}

// Option is a functional option for Subprocess configuration
type Option func(*Subprocess)

// WithTimeout overrides the per-call deadline
func WithTimeout(d time.Duration) Option {
	return func(s *Subprocess) {
		s.timeout = d
	}
}

// New creates a subprocess-backed analyzer. command is the argv prefix, e.g.
// ["python3", "chatbot/meeting_api.py"]; the snapshot JSON is appended as the
// final argument.
func New(command []string, opts ...Option) (*Subprocess, error) {
	if len(command) == 0 {
		return nil, goerr.New("analyzer command is required")
	}

	s := &Subprocess{
		command: command,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// rawResponse mirrors the analyzer's stdout contract. The optional error
// field carries the process's own failure description.
type rawResponse struct {
	Success    bool            `json:"success"`
	Analysis   json.RawMessage `json:"analysis"`
	Source     string          `json:"source"`
	TokensUsed int             `json:"tokens_used"`
	Error      string          `json:"error"`
}

func emptyAnalysis(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", `""`, "{}", "[]":
		return true
	default:
		return false
	}
}

func (s *Subprocess) Analyze(ctx context.Context, snapshot *model.AnalysisSnapshot) (*model.AnalysisResult, error) {
	input, err := json.Marshal(snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode analysis snapshot")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := make([]string, 0, len(s.command))
	args = append(args, s.command[1:]...)
	args = append(args, string(input))

	cmd := exec.CommandContext(ctx, s.command[0], args...)
	// Grandchildren inheriting stdout keep the pipe open past the deadline;
	// WaitDelay stops Wait from blocking on them once the context is done.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	diagnostic := strings.TrimSpace(stderr.String())
	if diagnostic != "" {
		logging.From(ctx).Debug("analyzer diagnostics", "stderr", diagnostic)
	}

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return nil, goerr.Wrap(ErrTimeout, "analyzer did not respond in time",
			goerr.V("timeout", s.timeout),
			goerr.V("stderr", diagnostic))
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			msg := fmt.Sprintf("analyzer exited with code %d", exitErr.ExitCode())
			if diagnostic != "" {
				msg += ": " + diagnostic
			}
			return nil, goerr.Wrap(ErrProcessFailed, msg,
				goerr.V("exit_code", exitErr.ExitCode()),
				goerr.V("stderr", diagnostic))
		}
		return nil, goerr.Wrap(ErrLaunchFailed, "could not start analyzer",
			goerr.V("command", s.command[0]),
			goerr.V("cause", runErr.Error()))
	}

	var resp rawResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "analyzer output is not valid JSON",
			goerr.V("output", truncate(stdout.String(), 512)),
			goerr.V("stderr", diagnostic))
	}

	if !resp.Success || emptyAnalysis(resp.Analysis) {
		return nil, goerr.Wrap(ErrMalformedResponse, "analyzer returned no usable analysis",
			goerr.V("success", resp.Success),
			goerr.V("analyzer_error", resp.Error),
			goerr.V("stderr", diagnostic))
	}

	return &model.AnalysisResult{
		Success:    true,
		Analysis:   resp.Analysis,
		Source:     resp.Source,
		TokensUsed: resp.TokensUsed,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
