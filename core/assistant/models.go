package assistant

import (
	"context"

	"github.com/campusflow/campusflow/core/schedule"
)

// Oracle is a text-in, text-out language model. Its replies are not trusted.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Intent string

const (
	IntentChat     Intent = "chat"
	IntentSchedule Intent = "schedule"
)

type ReplyType string

const (
	ReplyChat         ReplyType = "chat"
	ReplySchedule     ReplyType = "schedule"
	ReplyConfirmation ReplyType = "confirmation"
)

const ConfirmationMessage = "This change replaces a high-priority task with a lower-priority one. Are you sure?"

type (
	Message struct {
		Role    string `json:"role" validate:"required,oneof=user assistant"`
		Content string `json:"content" validate:"required"`
	}

	Request struct {
		Message  string    `json:"message" validate:"required,notblank,max=4000"`
		Messages []Message `json:"messages" validate:"max=50,dive"`
	}

	// Reply is what the assistant answers. Reply holds a string for chat replies
	// and the saved schedule for schedule replies.
	Reply struct {
		Type            ReplyType              `json:"type"`
		Reply           interface{}            `json:"reply,omitempty"`
		Message         string                 `json:"message,omitempty"`
		PendingSchedule *schedule.WeekSchedule `json:"pendingSchedule,omitempty"`
		Conflicts       []schedule.Conflict    `json:"conflicts,omitempty"`
		Changes         string                 `json:"changes,omitempty"`
	}

	Confirmation struct {
		PendingSchedule *schedule.WeekSchedule `json:"pendingSchedule" validate:"required"`
	}
)
