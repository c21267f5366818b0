package dto

import (
	"time"

	"github.com/spec-kit/internship-service/internal/domain"
)

// CreateContactRequest payload from the public contact form.
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
	Phone   *string `json:"phone"`
}

// UpdateContactStatusRequest payload.
type UpdateContactStatusRequest struct {
	Status domain.ContactStatus `json:"status"`
}

// ContactResponse is the dashboard view of a submission.
type ContactResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Phone     *string              `json:"phone"`
	Status    domain.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ContactStatsResponse aggregates dashboard counters.
type ContactStatsResponse struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Read      int64 `json:"read"`
	Responded int64 `json:"responded"`
}

// FromContact maps a domain submission to its response.
func FromContact(contact *domain.ContactSubmission) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Phone:     contact.Phone,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

// FromContacts maps a slice of submissions.
func FromContacts(contacts []domain.ContactSubmission) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, FromContact(&contacts[i]))
	}
	return out
}
