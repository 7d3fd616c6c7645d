package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model/config"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/repository/memory"
	"github.com/mindverse-hq/taskdeck/pkg/service/mail"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
)

type stubAnalyzer struct {
	mu        sync.Mutex
	calls     int
	snapshots []*model.AnalysisSnapshot
	result    *model.AnalysisResult
	err       error
}

func (x *stubAnalyzer) Analyze(ctx context.Context, snapshot *model.AnalysisSnapshot) (*model.AnalysisResult, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.calls++
	x.snapshots = append(x.snapshots, snapshot)
	if x.err != nil {
		return nil, x.err
	}
	return x.result, nil
}

type stubDirectory struct {
	users map[types.UserID]model.UserRef
}

func (x *stubDirectory) Resolve(ctx context.Context, ids []types.UserID) (map[types.UserID]model.UserRef, error) {
	found := map[types.UserID]model.UserRef{}
	for _, id := range ids {
		if ref, ok := x.users[id]; ok {
			found[id] = ref
		}
	}
	return found, nil
}

type countingMailClient struct {
	mu       sync.Mutex
	messages []*mail.Message
	failAddr map[string]bool
}

func (x *countingMailClient) Send(ctx context.Context, msg *mail.Message) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.failAddr[msg.To] {
		return errors.New("mailbox unavailable")
	}
	x.messages = append(x.messages, msg)
	return nil
}

func testDirectory() *stubDirectory {
	return &stubDirectory{users: map[types.UserID]model.UserRef{
		"member-1": {ID: "member-1", Username: "bob", Email: "bob@example.com"},
		"member-2": {ID: "member-2", Username: "carol", Email: "carol@example.com"},
	}}
}

func analysisResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Success:    true,
		Analysis:   json.RawMessage(`{"needsMeeting":true,"urgency":"high"}`),
		Source:     "llm",
		TokensUsed: 512,
	}
}

func TestAnalyzeTask(t *testing.T) {
	newFixture := func(analyzer *stubAnalyzer) (*usecase.UseCases, *model.Task) {
		uc := usecase.New(memory.New(),
			usecase.WithAnalyzer(analyzer),
			usecase.WithDirectory(testDirectory()),
		)
		task, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name:        "Quarterly report",
			Description: "Numbers for Q3",
			Status:      types.TaskStatusInProgress,
			Assignees:   []types.UserID{"member-1", "member-2"},
		})
		gt.NoError(t, err).Required()
		return uc, task
	}

	t.Run("returns the analyzer result with task summary", func(t *testing.T) {
		analyzer := &stubAnalyzer{result: analysisResult()}
		uc, task := newFixture(analyzer)

		out, err := uc.Meeting.AnalyzeTask(leadContext(), task.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, out.Task.ID).Equal(task.ID)
		gt.Value(t, out.Task.Name).Equal("Quarterly report")
		gt.Value(t, out.Task.Status).Equal(types.TaskStatusInProgress)
		gt.Array(t, out.Task.Assignees).Length(2)
		gt.Value(t, out.Result.Source).Equal("llm")
		gt.Number(t, out.Result.TokensUsed).Equal(512)
		gt.String(t, string(out.Result.Analysis)).Contains("needsMeeting")
	})

	t.Run("snapshot carries resolved assignees", func(t *testing.T) {
		analyzer := &stubAnalyzer{result: analysisResult()}
		uc, task := newFixture(analyzer)

		_, err := uc.Meeting.AnalyzeTask(leadContext(), task.ID)
		gt.NoError(t, err).Required()

		gt.Array(t, analyzer.snapshots).Length(1)
		snapshot := analyzer.snapshots[0]
		gt.Value(t, snapshot.Name).Equal("Quarterly report")
		gt.Value(t, snapshot.Status).Equal(types.TaskStatusInProgress)
		gt.Array(t, snapshot.Assignees).Length(2)
		gt.Value(t, snapshot.Assignees[0].Email).Equal("bob@example.com")
	})

	t.Run("done task is rejected before the analyzer runs", func(t *testing.T) {
		analyzer := &stubAnalyzer{result: analysisResult()}
		uc, task := newFixture(analyzer)

		_, err := uc.Task.UpdateStatus(leadContext(), task.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()

		_, err = uc.Meeting.AnalyzeTask(leadContext(), task.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskAlreadyDone)).True()
		gt.Number(t, analyzer.calls).Equal(0)
	})

	t.Run("member cannot analyze", func(t *testing.T) {
		analyzer := &stubAnalyzer{result: analysisResult()}
		uc, task := newFixture(analyzer)

		_, err := uc.Meeting.AnalyzeTask(memberContext(), task.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
		gt.Number(t, analyzer.calls).Equal(0)
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		analyzer := &stubAnalyzer{result: analysisResult()}
		uc, _ := newFixture(analyzer)

		_, err := uc.Meeting.AnalyzeTask(leadContext(), types.NewTaskID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})

	t.Run("analyzer failure propagates", func(t *testing.T) {
		analyzer := &stubAnalyzer{err: errors.New("model unavailable")}
		uc, task := newFixture(analyzer)

		_, err := uc.Meeting.AnalyzeTask(leadContext(), task.ID)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("model unavailable")
	})
}

func TestScheduleMeeting(t *testing.T) {
	newFixture := func(client mail.Client) (*usecase.UseCases, *model.Task) {
		var fanout *mail.Fanout
		if client != nil {
			fanout = mail.NewFanout(client)
		}
		opts := []usecase.Option{
			usecase.WithDirectory(testDirectory()),
			usecase.WithBaseURL("https://taskdeck.example.com"),
		}
		if fanout != nil {
			opts = append(opts, usecase.WithFanout(fanout))
		}

		uc := usecase.New(memory.New(), opts...)
		task, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name:      "Quarterly report",
			Status:    types.TaskStatusInProgress,
			Assignees: []types.UserID{"member-1", "member-2"},
		})
		gt.NoError(t, err).Required()
		return uc, task
	}

	input := func(taskID types.TaskID) *usecase.ScheduleMeetingInput {
		return &usecase.ScheduleMeetingInput{
			TaskID:   taskID,
			Title:    "Q3 sync",
			Date:     "2026-09-01",
			Time:     "14:00",
			Duration: 45,
			Agenda:   "Review numbers",
			Type:     types.MeetingTypeExternal,
		}
	}

	t.Run("stores the meeting and delivers one invitation per assignee", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		out, err := uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err).Required()

		gt.String(t, out.Meeting.ID.String()).NotEqual("")
		gt.Value(t, out.Meeting.TaskName).Equal("Quarterly report")
		gt.Value(t, out.Meeting.OrganizerName).Equal("alice")
		gt.Bool(t, strings.HasPrefix(out.Meeting.JoinURL, "https://meet.jit.si/")).True()

		gt.Number(t, out.Delivery.Attempted).Equal(2)
		gt.Number(t, out.Delivery.Succeeded).Equal(2)
		gt.Value(t, out.Delivery.Status).Equal(model.DeliveryStatusDelivered)
		gt.Array(t, client.messages).Length(2)

		meetings, err := uc.Meeting.ListMeetings(leadContext())
		gt.NoError(t, err).Required()
		gt.Array(t, meetings).Length(1)
		gt.Value(t, meetings[0].ID).Equal(out.Meeting.ID)
	})

	t.Run("one failed invitation does not block the others", func(t *testing.T) {
		client := &countingMailClient{failAddr: map[string]bool{"carol@example.com": true}}
		uc, task := newFixture(client)

		out, err := uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err).Required()

		gt.Number(t, out.Delivery.Attempted).Equal(2)
		gt.Number(t, out.Delivery.Succeeded).Equal(1)
		gt.Value(t, out.Delivery.Status).Equal(model.DeliveryStatusPartial)
		gt.Array(t, out.Delivery.Failures).Length(1)
		gt.Value(t, out.Delivery.Failures[0].Recipient).Equal("carol@example.com")

		// Scheduling succeeded even though a delivery failed
		meetings, err := uc.Meeting.ListMeetings(leadContext())
		gt.NoError(t, err).Required()
		gt.Array(t, meetings).Length(1)
	})

	t.Run("missing mail transport skips delivery without failing", func(t *testing.T) {
		uc, task := newFixture(nil)

		out, err := uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err).Required()

		gt.Number(t, out.Delivery.Attempted).Equal(0)
		gt.Value(t, out.Delivery.Status).Equal(model.DeliveryStatusSkipped)
	})

	t.Run("internal meeting links under the application base URL", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		in := input(task.ID)
		in.Type = types.MeetingTypeInternal
		out, err := uc.Meeting.ScheduleMeeting(leadContext(), in)
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.HasPrefix(out.Meeting.JoinURL, "https://taskdeck.example.com/meetings/")).True()
	})

	t.Run("omitted duration falls back to the default", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		in := input(task.ID)
		in.Duration = 0
		out, err := uc.Meeting.ScheduleMeeting(leadContext(), in)
		gt.NoError(t, err).Required()

		gt.Number(t, out.Meeting.Duration).Equal(config.DefaultMeetingConfig().DefaultDuration)
	})

	t.Run("done task can still get a wrap-up meeting", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		_, err := uc.Task.UpdateStatus(leadContext(), task.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()

		_, err = uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err)
	})

	t.Run("member cannot schedule", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		_, err := uc.Meeting.ScheduleMeeting(memberContext(), input(task.ID))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		client := &countingMailClient{}
		uc, _ := newFixture(client)

		_, err := uc.Meeting.ScheduleMeeting(leadContext(), input(types.NewTaskID()))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})

	t.Run("missing title is invalid", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		in := input(task.ID)
		in.Title = ""
		_, err := uc.Meeting.ScheduleMeeting(leadContext(), in)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("member cannot list meetings", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		_, err := uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err).Required()

		_, err = uc.Meeting.ListMeetings(memberContext())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("get meeting by ID", func(t *testing.T) {
		client := &countingMailClient{}
		uc, task := newFixture(client)

		out, err := uc.Meeting.ScheduleMeeting(leadContext(), input(task.ID))
		gt.NoError(t, err).Required()

		meeting, err := uc.Meeting.GetMeeting(leadContext(), out.Meeting.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, meeting.Title).Equal("Q3 sync")

		_, err = uc.Meeting.GetMeeting(leadContext(), types.NewMeetingID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMeetingNotFound)).True()
	})
}
