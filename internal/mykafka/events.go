package mykafka

import "time"

const (
	ProjectCreated  = "project_created"
	ProjectUpdated  = "project_updated"
	ProjectDeleted  = "project_deleted"
	SkillCreated    = "skill_created"
	MessageReceived = "message_received"
	MessagesPurged  = "messages_purged"
	RatingSubmitted = "rating_submitted"
)

type ProjectEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	ProjectID  uint      `json:"projectID"`
	Title      string    `json:"title,omitempty"`
}

type SkillEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	SkillID    uint      `json:"skillID"`
	Name       string    `json:"name"`
}

type MessageEvent struct {
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurred_at"`
	MessageID   uint      `json:"messageID,omitempty"`
	SenderEmail string    `json:"sender_email,omitempty"`
	Deleted     int64     `json:"deleted,omitempty"`
}

type RatingEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	RatingID   uint      `json:"ratingID"`
	ProjectID  uint      `json:"projectID"`
	Rating     int       `json:"rating"`
}
