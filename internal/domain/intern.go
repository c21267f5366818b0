package domain

import "time"

// InternStatus enumerates lifecycle states for interns.
type InternStatus string

const (
	InternStatusPending   InternStatus = "pending"
	InternStatusActive    InternStatus = "active"
	InternStatusCompleted InternStatus = "completed"
)

// Intern is the roster entity managed by the program.
type Intern struct {
	ID           string
	InternID     string // human-readable identifier, immutable once assigned
	Name         string
	Email        string
	Phone        string
	Gender       *string
	Country      *string
	Domain       string
	Address      *string
	College      *string
	Degree       *string
	YearOfStudy  *string
	SocialMedia  *string
	AppliedAt    time.Time
	Phase        int
	StartDate    time.Time
	EndDate      time.Time
	Status       InternStatus
	OfferSent    bool
	CertSent     bool
	SheetRow     *int // source roster row this record was created from
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InternStats aggregates dashboard counters.
type InternStats struct {
	Total     int64
	Pending   int64
	Active    int64
	Completed int64
}
