package analyzer

import (
	"context"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
)

// Service obtains a structured meeting suggestion for a task snapshot. The
// concrete mechanism (isolated process, remote call, in-process library) is
// swappable; the orchestrator only depends on this interface.
type Service interface {
	Analyze(ctx context.Context, snapshot *model.AnalysisSnapshot) (*model.AnalysisResult, error)
}
