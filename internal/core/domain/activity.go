package domain

import "time"

// ActivityAction names an auditable change.
type ActivityAction string

const (
	ActionUserRegistered  ActivityAction = "user_registered"
	ActionPasswordChanged ActivityAction = "password_changed"
	ActionStoreCreated    ActivityAction = "store_created"
	ActionOwnerPromoted   ActivityAction = "owner_promoted"
	ActionRatingCreated   ActivityAction = "rating_created"
	ActionRatingUpdated   ActivityAction = "rating_updated"
)

// Activity is one entry of the append-only audit trail.
type Activity struct {
	Action      ActivityAction `json:"action"`
	ActorID     uint           `json:"actorId"`
	SubjectType string         `json:"subjectType"`
	SubjectID   uint           `json:"subjectId"`
	Detail      string         `json:"detail,omitempty"`
	At          time.Time      `json:"at"`
}
