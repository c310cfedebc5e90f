package domain

import "time"

const (
	PollStatusPublished = "published"
	PollStatusClosed    = "closed"
)

type Poll struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Question       string       `json:"question"`
	CreatorName    string       `json:"creator_name"`
	Status         string       `json:"status"` // "published" or "closed"
	IsActive       bool         `json:"is_active"`
	AllowAnonymous bool         `json:"allow_anonymous"`
	EndAt          *time.Time   `json:"end_at"`
	Options        []PollOption `json:"options"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Expired reports whether the poll has a scheduled end time that has passed.
func (p *Poll) Expired(now time.Time) bool {
	return p.EndAt != nil && !p.EndAt.After(now)
}

type PollOption struct {
	ID       uint   `json:"id"`
	PollID   uint   `json:"poll_id"`
	Text     string `json:"text"`
	Position int    `json:"position"` // tie-break ordinal, not display order
}
