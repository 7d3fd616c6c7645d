package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/safe"
)

type meetingRepository struct {
	db *sql.DB
}

const meetingColumns = "id, task_id, task_name, title, date, time, duration, agenda, type, join_url, organizer_id, organizer_name, recipients, created_at"

func scanMeeting(scan func(dest ...any) error) (*model.Meeting, error) {
	var meeting model.Meeting
	var recipientsRaw string
	var createdAt string

	if err := scan(&meeting.ID, &meeting.TaskID, &meeting.TaskName, &meeting.Title,
		&meeting.Date, &meeting.Time, &meeting.Duration, &meeting.Agenda,
		&meeting.Type, &meeting.JoinURL, &meeting.OrganizerID,
		&meeting.OrganizerName, &recipientsRaw, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recipientsRaw), &meeting.Recipients); err != nil {
		return nil, goerr.Wrap(err, "failed to decode recipients", goerr.V("id", meeting.ID))
	}

	var err error
	if meeting.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, goerr.Wrap(err, "failed to parse created_at", goerr.V("id", meeting.ID))
	}

	return &meeting, nil
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	created := *meeting
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	recipients := created.Recipients
	if recipients == nil {
		recipients = []model.UserRef{}
	}
	recipientsRaw, err := json.Marshal(recipients)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode recipients", goerr.V("id", created.ID))
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meetings (`+meetingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID.String(), created.TaskID.String(), created.TaskName, created.Title,
		created.Date, created.Time, created.Duration, created.Agenda,
		created.Type.String(), created.JoinURL, created.OrganizerID.String(),
		created.OrganizerName, string(recipientsRaw),
		created.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert meeting", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id.String())

	meeting, err := scanMeeting(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "meeting not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}

	return meeting, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY created_at DESC`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}
	defer safe.Close(ctx, rows)

	var meetings []*model.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows.Scan)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan meeting")
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate meetings")
	}

	return meetings, nil
}
