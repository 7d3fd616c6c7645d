package model

import (
	"encoding/json"
	"time"

	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// AssigneeSummary is the per-assignee projection handed to the analyzer
type AssigneeSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AnalysisSnapshot is an immutable projection of a task built for exactly one
// analysis call. The JSON field names are the wire contract of the external
// analyzer process and must not change independently of it.
type AnalysisSnapshot struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Status      types.TaskStatus  `json:"progressStatus"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	Assignees   []AssigneeSummary `json:"assignees"`
}

// AnalysisResult is the analyzer's structured suggestion. Analysis is kept as
// raw JSON: the analyzer emits a structured suggestion document and the API
// passes it through untouched.
type AnalysisResult struct {
	Success    bool            `json:"success"`
	Analysis   json.RawMessage `json:"analysis"`
	Source     string          `json:"source"`
	TokensUsed int             `json:"tokens_used"`
}
