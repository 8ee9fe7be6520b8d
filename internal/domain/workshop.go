package domain

import "time"

// Enrollment is one student seat in a workshop.
type Enrollment struct {
	UserID       int       `json:"userId"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	EnrolledDate time.Time `json:"enrolledDate"`
}

// Workshop is a scheduled craft class with limited seats.
type Workshop struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Instructor  string         `json:"instructor"`
	Date        time.Time      `json:"date"`
	DurationMin int            `json:"durationMin"`
	Capacity    int            `json:"capacity"`
	Price       float64        `json:"price"`
	Location    string         `json:"location,omitempty"`
	Status      WorkshopStatus `json:"status"`
	Visible     bool           `json:"visible"`
	Enrollments []Enrollment   `json:"enrollments"`
}

// Seats returns how many free seats remain.
func (w Workshop) Seats() int {
	return w.Capacity - len(w.Enrollments)
}

// Enrolled reports whether the given user already holds a seat.
func (w Workshop) Enrolled(userID int) bool {
	for _, e := range w.Enrollments {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the workshop and its enrollment list.
func (w Workshop) Clone() Workshop {
	out := w
	out.Enrollments = make([]Enrollment, len(w.Enrollments))
	copy(out.Enrollments, w.Enrollments)
	return out
}
