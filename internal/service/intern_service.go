package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/email"
	"github.com/spec-kit/internship-service/internal/enrollment"
	"github.com/spec-kit/internship-service/internal/events"
	"github.com/spec-kit/internship-service/internal/repository"
	apperrors "github.com/spec-kit/internship-service/pkg/util/errorutil"
)

// InternService coordinates intern lifecycle workflows.
type InternService struct {
	interns    repository.InternRepository
	mailer     email.Mailer
	dispatcher events.Dispatcher
	now        func() time.Time
}

// InternDependencies bundles requirements for the intern service.
type InternDependencies struct {
	InternRepo repository.InternRepository
	Mailer     email.Mailer
	Dispatcher events.Dispatcher
	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

// InternCreateInput describes dashboard enrollment payload.
type InternCreateInput struct {
	Name        string
	Email       string
	Phone       string
	Domain      string
	Gender      *string
	Country     *string
	Address     *string
	College     *string
	Degree      *string
	YearOfStudy *string
	SocialMedia *string
}

// InternUpdateInput carries optional field updates. The identifier, phase and
// program dates are immutable through the dashboard.
type InternUpdateInput struct {
	Name        *string
	Phone       *string
	Status      *domain.InternStatus
	Gender      *string
	Country     *string
	Address     *string
	College     *string
	Degree      *string
	YearOfStudy *string
	SocialMedia *string
}

// NewInternService constructs the service.
func NewInternService(deps InternDependencies) *InternService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &InternService{
		interns:    deps.InternRepo,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// CreateIntern enrolls an applicant from the dashboard. The cohort is derived
// from the current time and the identifier is assigned immediately.
func (s *InternService) CreateIntern(ctx context.Context, input InternCreateInput) (*domain.Intern, error) {
	name := strings.TrimSpace(input.Name)
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	domainLabel := strings.TrimSpace(input.Domain)
	if name == "" || emailAddr == "" || domainLabel == "" {
		return nil, apperrors.NewValidationError("name, email and domain are required", nil)
	}

	if _, err := s.interns.GetByEmail(ctx, emailAddr); err == nil {
		return nil, apperrors.NewConflict("email already enrolled", map[string]any{"email": emailAddr})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	appliedAt := s.now()
	cohort := enrollment.Compute(appliedAt)

	intern := &domain.Intern{
		InternID:    enrollment.NewInternID(domainLabel, cohort.Phase),
		Name:        name,
		Email:       emailAddr,
		Phone:       strings.TrimSpace(input.Phone),
		Gender:      input.Gender,
		Country:     input.Country,
		Domain:      domainLabel,
		Address:     input.Address,
		College:     input.College,
		Degree:      input.Degree,
		YearOfStudy: input.YearOfStudy,
		SocialMedia: input.SocialMedia,
		AppliedAt:   appliedAt,
		Phase:       cohort.Phase,
		StartDate:   cohort.Start,
		EndDate:     cohort.End,
		Status:      domain.InternStatusPending,
	}

	if err := s.interns.Create(ctx, intern); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventInternEnrolled,
		Payload: events.InternEnrolledPayload{
			InternID: intern.InternID,
			Email:    intern.Email,
			Domain:   intern.Domain,
			Phase:    intern.Phase,
			Source:   "dashboard",
		},
	})
	return intern, nil
}

// GetIntern fetches a single intern by database id.
func (s *InternService) GetIntern(ctx context.Context, id string) (*domain.Intern, error) {
	return s.interns.GetByID(ctx, id)
}

// ListInterns returns interns matching the dashboard filter.
func (s *InternService) ListInterns(ctx context.Context, filter repository.InternFilter) ([]domain.Intern, error) {
	return s.interns.ListWithFilter(ctx, filter)
}

// Stats returns aggregate dashboard counters.
func (s *InternService) Stats(ctx context.Context) (*domain.InternStats, error) {
	return s.interns.Stats(ctx)
}

// VerifyInternID resolves a public verification request. Malformed
// identifiers are rejected before touching storage.
func (s *InternService) VerifyInternID(ctx context.Context, internID string) (*domain.Intern, error) {
	internID = strings.ToUpper(strings.TrimSpace(internID))
	if !enrollment.IsValidInternID(internID) {
		return nil, apperrors.NewValidationError("malformed internship identifier", map[string]any{"intern_id": internID})
	}
	intern, err := s.interns.GetByInternID(ctx, internID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("internship record", map[string]any{"intern_id": internID})
	}
	if err != nil {
		return nil, err
	}
	return intern, nil
}

// UpdateIntern applies partial updates to mutable fields.
func (s *InternService) UpdateIntern(ctx context.Context, id string, input InternUpdateInput) (*domain.Intern, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		intern.Name = name
	}
	if input.Phone != nil {
		intern.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Status != nil {
		if !isValidInternStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		intern.Status = *input.Status
	}
	if input.Gender != nil {
		intern.Gender = input.Gender
	}
	if input.Country != nil {
		intern.Country = input.Country
	}
	if input.Address != nil {
		intern.Address = input.Address
	}
	if input.College != nil {
		intern.College = input.College
	}
	if input.Degree != nil {
		intern.Degree = input.Degree
	}
	if input.YearOfStudy != nil {
		intern.YearOfStudy = input.YearOfStudy
	}
	if input.SocialMedia != nil {
		intern.SocialMedia = input.SocialMedia
	}

	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}
	return intern, nil
}

// DeleteIntern removes an intern record.
func (s *InternService) DeleteIntern(ctx context.Context, id string) error {
	return s.interns.Delete(ctx, id)
}

// SendOfferLetter emails the offer letter once per intern.
func (s *InternService) SendOfferLetter(ctx context.Context, id string) (*domain.Intern, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if intern.OfferSent {
		return nil, apperrors.NewConflict("offer letter already sent", map[string]any{"intern_id": intern.InternID})
	}

	msg, err := email.RenderOfferLetter(intern)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, err
	}

	intern.OfferSent = true
	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventOfferLetterSent,
		Payload: events.OfferLetterSentPayload{
			InternID: intern.InternID,
			Email:    intern.Email,
		},
	})
	return intern, nil
}

// SendCertificate emails the completion certificate and marks the internship
// completed. The offer letter must have gone out first.
func (s *InternService) SendCertificate(ctx context.Context, id string) (*domain.Intern, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !intern.OfferSent {
		return nil, apperrors.NewConflict("certificate requires the offer letter to be sent first", map[string]any{"intern_id": intern.InternID})
	}
	if intern.CertSent {
		return nil, apperrors.NewConflict("certificate already sent", map[string]any{"intern_id": intern.InternID})
	}

	msg, err := email.RenderCertificate(intern)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, err
	}

	intern.CertSent = true
	intern.Status = domain.InternStatusCompleted
	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventCertificateSent,
		Payload: events.CertificateSentPayload{
			InternID: intern.InternID,
			Email:    intern.Email,
		},
	})
	return intern, nil
}

// PreviewOfferLetter renders the offer letter HTML without sending anything.
func (s *InternService) PreviewOfferLetter(ctx context.Context, id string) (string, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	msg, err := email.RenderOfferLetter(intern)
	if err != nil {
		return "", err
	}
	return msg.HTMLBody, nil
}

// PreviewCertificate renders the certificate HTML without sending anything.
func (s *InternService) PreviewCertificate(ctx context.Context, id string) (string, error) {
	intern, err := s.interns.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	msg, err := email.RenderCertificate(intern)
	if err != nil {
		return "", err
	}
	return msg.HTMLBody, nil
}

func (s *InternService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.dispatcher.Publish(ctx, event)
}

func isValidInternStatus(status domain.InternStatus) bool {
	switch status {
	case domain.InternStatusPending, domain.InternStatusActive, domain.InternStatusCompleted:
		return true
	}
	return false
}
