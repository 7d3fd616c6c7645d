package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/async"
	"github.com/mindverse-hq/taskdeck/pkg/utils/errutil"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

// MeetingUseCase orchestrates meeting analysis and scheduling for tasks. Both
// operations are privileged: only leads and HR arrange meetings.
type MeetingUseCase struct {
	uc *UseCases
}

func newMeetingUseCase(uc *UseCases) *MeetingUseCase {
	return &MeetingUseCase{uc: uc}
}

// TaskSummary is the minimal task projection returned alongside an analysis
type TaskSummary struct {
	ID        types.TaskID     `json:"id"`
	Name      string           `json:"name"`
	Status    types.TaskStatus `json:"progressStatus"`
	Assignees []types.UserID   `json:"assignTo"`
}

// AnalyzeTaskOutput bundles the analyzer's suggestion with the task summary it
// was produced for, so callers can render both without a second lookup.
type AnalyzeTaskOutput struct {
	Task   TaskSummary           `json:"task"`
	Result *model.AnalysisResult `json:"result"`
}

// AnalyzeTask builds an immutable snapshot of the task and obtains a meeting
// suggestion from the analyzer. Tasks already marked Done are rejected before
// the analyzer is ever invoked.
func (x *MeetingUseCase) AnalyzeTask(ctx context.Context, taskID types.TaskID) (*AnalyzeTaskOutput, error) {
	if _, err := requirePrivileged(ctx); err != nil {
		return nil, err
	}
	if err := taskID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "task ID is required")
	}
	if x.uc.analyzer == nil {
		return nil, goerr.New("analyzer is not configured")
	}

	task, err := x.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == types.TaskStatusDone {
		return nil, goerr.Wrap(ErrTaskAlreadyDone, "completed tasks do not need a meeting",
			goerr.V(TaskIDKey, taskID))
	}

	snapshot := &model.AnalysisSnapshot{
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		Assignees:   x.assigneeSummaries(ctx, task.Assignees),
	}

	result, err := x.uc.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "task analysis failed", goerr.V(TaskIDKey, taskID))
	}

	logging.From(ctx).Info("task analyzed",
		"task_id", taskID,
		"source", result.Source,
		"tokens_used", result.TokensUsed,
	)

	return &AnalyzeTaskOutput{
		Task: TaskSummary{
			ID:        task.ID,
			Name:      task.Name,
			Status:    task.Status,
			Assignees: task.Assignees,
		},
		Result: result,
	}, nil
}

// ScheduleMeetingInput carries a meeting request for a task
type ScheduleMeetingInput struct {
	TaskID   types.TaskID      `json:"taskId"`
	Title    string            `json:"meetingTitle"`
	Date     string            `json:"meetingDate"`
	Time     string            `json:"meetingTime"`
	Duration int               `json:"duration"`
	Agenda   string            `json:"agenda"`
	Type     types.MeetingType `json:"meetingType"`
}

func (x *ScheduleMeetingInput) validate() error {
	if err := x.TaskID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "task ID is required")
	}
	if x.Title == "" {
		return goerr.Wrap(ErrInvalidInput, "meeting title is required")
	}
	if x.Date == "" {
		return goerr.Wrap(ErrInvalidInput, "meeting date is required")
	}
	if x.Time == "" {
		return goerr.Wrap(ErrInvalidInput, "meeting time is required")
	}
	if x.Duration < 0 {
		return goerr.Wrap(ErrInvalidInput, "meeting duration cannot be negative",
			goerr.V("duration", x.Duration))
	}
	if x.Type != "" && !x.Type.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "meeting type must be internal or external",
			goerr.V("meetingType", x.Type))
	}
	return nil
}

// ScheduleMeetingOutput is the result of a schedule call. The meeting record
// and the delivery report are separate concerns: the meeting exists even when
// some or all invitations failed.
type ScheduleMeetingOutput struct {
	Meeting  *model.Meeting        `json:"meeting"`
	Delivery *model.DeliveryReport `json:"deliveryReport"`
}

// ScheduleMeeting records a meeting for a task and fans out the invitations
// to the task's assignees. Invitation delivery is best-effort and never fails
// the scheduling itself.
func (x *MeetingUseCase) ScheduleMeeting(ctx context.Context, input *ScheduleMeetingInput) (*ScheduleMeetingOutput, error) {
	principal, err := requirePrivileged(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	task, err := x.loadTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	duration := input.Duration
	if duration == 0 {
		duration = x.uc.meetingCfg.DefaultDuration
	}

	meeting := &model.Meeting{
		ID:            types.NewMeetingID(),
		TaskID:        task.ID,
		TaskName:      task.Name,
		Title:         input.Title,
		Date:          input.Date,
		Time:          input.Time,
		Duration:      duration,
		Agenda:        input.Agenda,
		Type:          input.Type.Normalize(),
		OrganizerID:   principal.ID,
		OrganizerName: principal.Username,
		Recipients:    x.resolveRecipients(ctx, task.Assignees),
		CreatedAt:     time.Now(),
	}
	meeting.JoinURL = x.uc.meetingCfg.JoinURL(meeting.Type, meeting.ID, x.uc.baseURL)

	created, err := x.uc.repo.Meeting().Create(ctx, meeting)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store meeting", goerr.V(TaskIDKey, task.ID))
	}

	logging.From(ctx).Info("meeting scheduled",
		"meeting_id", created.ID,
		"task_id", created.TaskID,
		"type", created.Type,
		"organizer", created.OrganizerID,
	)

	report := x.uc.fanout.Send(ctx, created, created.Recipients)

	if x.uc.slack != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := x.uc.slack.AnnounceMeeting(ctx, created); err != nil {
				errutil.Handle(ctx, err, "failed to announce meeting")
			}
			return nil
		})
	}

	return &ScheduleMeetingOutput{
		Meeting:  created,
		Delivery: report,
	}, nil
}

// ListMeetings returns the scheduled meeting records, newest first
func (x *MeetingUseCase) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	if _, err := requirePrivileged(ctx); err != nil {
		return nil, err
	}

	meetings, err := x.uc.repo.Meeting().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}
	return meetings, nil
}

// GetMeeting returns one meeting record by ID
func (x *MeetingUseCase) GetMeeting(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	if _, err := requirePrivileged(ctx); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "meeting ID is required")
	}

	meeting, err := x.uc.repo.Meeting().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrMeetingNotFound, "meeting not found", goerr.V(MeetingIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V(MeetingIDKey, id))
	}
	return meeting, nil
}

func (x *MeetingUseCase) loadTask(ctx context.Context, id types.TaskID) (*model.Task, error) {
	task, err := x.uc.repo.Task().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V(TaskIDKey, id))
	}
	return task, nil
}

// resolveRecipients looks up the assignee IDs in the user directory. IDs the
// directory does not know are kept as bare references so the delivery report
// still names them.
func (x *MeetingUseCase) resolveRecipients(ctx context.Context, ids []types.UserID) []model.UserRef {
	refs := make([]model.UserRef, 0, len(ids))

	var resolved map[types.UserID]model.UserRef
	if x.uc.directory != nil && len(ids) > 0 {
		var err error
		resolved, err = x.uc.directory.Resolve(ctx, ids)
		if err != nil {
			errutil.Handle(ctx, err, "failed to resolve meeting recipients")
			resolved = nil
		}
	}

	for _, id := range ids {
		if ref, ok := resolved[id]; ok {
			refs = append(refs, ref)
			continue
		}
		refs = append(refs, model.UserRef{ID: id, Username: id.String()})
	}

	return refs
}

func (x *MeetingUseCase) assigneeSummaries(ctx context.Context, ids []types.UserID) []model.AssigneeSummary {
	refs := x.resolveRecipients(ctx, ids)
	summaries := make([]model.AssigneeSummary, 0, len(refs))
	for _, ref := range refs {
		summaries = append(summaries, model.AssigneeSummary{
			Username: ref.Username,
			Email:    ref.Email,
		})
	}
	return summaries
}
