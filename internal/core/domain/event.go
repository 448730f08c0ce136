package domain

import "time"

// Event is a scheduled gathering (conference, matchmaking session, webinar).
// AttendeesCount is maintained server-side with an atomic increment so
// concurrent registrations never lose updates.
type Event struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Title          string    `json:"title" bson:"title"`
	Date           time.Time `json:"date" bson:"date"`
	Time           string    `json:"time" bson:"time"`
	Location       string    `json:"location" bson:"location"`
	Type           string    `json:"type" bson:"type"`
	AttendeesCount int       `json:"attendees_count" bson:"attendees_count"`
	MaxAttendees   *int      `json:"max_attendees,omitempty" bson:"max_attendees,omitempty"`
	Description    string    `json:"description" bson:"description"`
	HasSurvey      bool      `json:"has_survey" bson:"has_survey"`
	Agenda         []string  `json:"agenda,omitempty" bson:"agenda,omitempty"`
	Speakers       []string  `json:"speakers,omitempty" bson:"speakers,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// EventRegistration is the (profile, event) join row; existence implies the
// profile is registered.
type EventRegistration struct {
	ProfileID    string    `json:"profile_id" bson:"profile_id"`
	EventID      string    `json:"event_id" bson:"event_id"`
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at"`
}

// SavedOpportunity is the (profile, opportunity) bookmark join row.
type SavedOpportunity struct {
	ProfileID     string    `json:"profile_id" bson:"profile_id"`
	OpportunityID string    `json:"opportunity_id" bson:"opportunity_id"`
	SavedAt       time.Time `json:"saved_at" bson:"saved_at"`
}
