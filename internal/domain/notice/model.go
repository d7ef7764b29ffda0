package notice

import (
	"errors"
	"time"
)

// Notice statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Max length constants.
const (
	MaxTitleLength   = 140
	MaxContentLength = 8000
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrEmptyGym         = errors.New("notice must belong to a gym")
	ErrTitleTooLong     = errors.New("notice title cannot exceed 140 characters")
	ErrContentTooLong   = errors.New("notice content cannot exceed 8000 characters")
	ErrInvalidStatus    = errors.New("notice status must be draft or published")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// ValidStatuses contains all valid notice statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished}

// Notice is an announcement a gym manager posts for one of their gyms.
// Content supports Markdown formatting.
type Notice struct {
	ID          string
	GymID       string
	Title       string
	Content     string // Markdown content
	Status      string // draft, published
	CreatedBy   string // AccountID of the posting manager
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if n.GymID == "" {
		return ErrEmptyGym
	}
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	if len(n.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	if !isValidStatus(n.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Publish transitions the notice from draft to published.
// PRE: Notice is in draft status
// POST: Status is published, PublishedAt is set
func (n *Notice) Publish(now time.Time) error {
	if n.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
