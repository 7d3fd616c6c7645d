package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

func TestTaskStatus(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range types.AllTaskStatuses() {
			gt.Bool(t, s.IsValid()).True()
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		gt.Bool(t, types.TaskStatus("Review").IsValid()).False()
		gt.Bool(t, types.TaskStatus("").IsValid()).False()
	})

	t.Run("parse", func(t *testing.T) {
		status, err := types.ParseTaskStatus("InProgress")
		gt.NoError(t, err)
		gt.Value(t, status).Equal(types.TaskStatusInProgress)

		_, err = types.ParseTaskStatus("Doing")
		gt.Error(t, err)
	})
}

func TestMeetingType(t *testing.T) {
	t.Run("empty defaults to internal", func(t *testing.T) {
		parsed, err := types.ParseMeetingType("")
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(types.MeetingTypeInternal)
	})

	t.Run("external", func(t *testing.T) {
		parsed, err := types.ParseMeetingType("external")
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(types.MeetingTypeExternal)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := types.ParseMeetingType("hologram")
		gt.Error(t, err)
	})
}
