package memory

import (
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and testing
type Memory struct {
	task    *taskRepository
	meeting *meetingRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		task:    newTaskRepository(),
		meeting: newMeetingRepository(),
	}
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Meeting() interfaces.MeetingRepository {
	return m.meeting
}

func (m *Memory) Close() error {
	return nil
}
