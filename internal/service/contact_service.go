package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/events"
	"github.com/spec-kit/internship-service/internal/repository"
	apperrors "github.com/spec-kit/internship-service/pkg/util/errorutil"
)

// ContactService coordinates public contact submissions and their review.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
}

// ContactCreateInput describes a public contact form payload.
type ContactCreateInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Phone   *string
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher) *ContactService {
	return &ContactService{contacts: contacts, dispatcher: dispatcher}
}

// SubmitContact records a new submission from the public form.
func (s *ContactService) SubmitContact(ctx context.Context, input ContactCreateInput) (*domain.ContactSubmission, error) {
	name := strings.TrimSpace(input.Name)
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if name == "" || emailAddr == "" || subject == "" || message == "" {
		return nil, apperrors.NewValidationError("name, email, subject and message are required", nil)
	}

	contact := &domain.ContactSubmission{
		Name:    name,
		Email:   emailAddr,
		Subject: subject,
		Message: message,
		Phone:   input.Phone,
		Status:  domain.ContactStatusNew,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventContactReceived,
			Timestamp: time.Now(),
			Payload: events.ContactReceivedPayload{
				ContactID: contact.ID,
				Email:     contact.Email,
				Subject:   contact.Subject,
			},
		})
	}
	return contact, nil
}

// GetContact fetches a single submission. Opening a new submission marks it
// read.
func (s *ContactService) GetContact(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.Status == domain.ContactStatusNew {
		if err := s.contacts.UpdateStatus(ctx, id, domain.ContactStatusRead); err != nil {
			return nil, err
		}
		contact.Status = domain.ContactStatusRead
	}
	return contact, nil
}

// ListContacts returns submissions matching the dashboard filter.
func (s *ContactService) ListContacts(ctx context.Context, filter repository.ContactFilter) ([]domain.ContactSubmission, error) {
	return s.contacts.ListWithFilter(ctx, filter)
}

// UpdateContactStatus moves a submission through its review states.
func (s *ContactService) UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactSubmission, error) {
	switch status {
	case domain.ContactStatusNew, domain.ContactStatusRead, domain.ContactStatusResponded:
	default:
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	if err := s.contacts.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.contacts.GetByID(ctx, id)
}

// Stats returns aggregate dashboard counters for submissions.
func (s *ContactService) Stats(ctx context.Context) (*domain.ContactStats, error) {
	return s.contacts.Stats(ctx)
}

// DeleteContact removes a submission.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
