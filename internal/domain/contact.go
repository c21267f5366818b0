package domain

import "time"

// ContactStatus enumerates review states for contact submissions.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
)

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Phone     *string
	Status    ContactStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactStats aggregates dashboard counters for submissions.
type ContactStats struct {
	Total     int64
	New       int64
	Read      int64
	Responded int64
}
