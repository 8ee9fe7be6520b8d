package domain

import "time"

// TransitionEvent describes one status change on a workflow entity.
// Events are delivered to the configured webhook sink.
type TransitionEvent struct {
	EventID string    `json:"eventId"`
	Entity  string    `json:"entity"`
	ID      int       `json:"id"`
	Number  string    `json:"number,omitempty"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}
