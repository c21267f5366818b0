package dto

import (
	"time"

	"github.com/spec-kit/internship-service/internal/domain"
)

// CreateInternRequest payload for dashboard enrollment.
type CreateInternRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Domain      string  `json:"domain"`
	Gender      *string `json:"gender"`
	Country     *string `json:"country"`
	Address     *string `json:"address"`
	College     *string `json:"college"`
	Degree      *string `json:"degree"`
	YearOfStudy *string `json:"year_of_study"`
	SocialMedia *string `json:"social_media"`
}

// UpdateInternRequest carries optional field updates.
type UpdateInternRequest struct {
	Name        *string              `json:"name"`
	Phone       *string              `json:"phone"`
	Status      *domain.InternStatus `json:"status"`
	Gender      *string              `json:"gender"`
	Country     *string              `json:"country"`
	Address     *string              `json:"address"`
	College     *string              `json:"college"`
	Degree      *string              `json:"degree"`
	YearOfStudy *string              `json:"year_of_study"`
	SocialMedia *string              `json:"social_media"`
}

// InternResponse is the full dashboard view of an intern.
type InternResponse struct {
	ID          string              `json:"id"`
	InternID    string              `json:"intern_id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Gender      *string             `json:"gender"`
	Country     *string             `json:"country"`
	Domain      string              `json:"domain"`
	Address     *string             `json:"address"`
	College     *string             `json:"college"`
	Degree      *string             `json:"degree"`
	YearOfStudy *string             `json:"year_of_study"`
	SocialMedia *string             `json:"social_media"`
	AppliedAt   time.Time           `json:"applied_at"`
	Phase       int                 `json:"phase"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Status      domain.InternStatus `json:"status"`
	OfferSent   bool                `json:"offer_letter_sent"`
	CertSent    bool                `json:"certificate_sent"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// VerificationResponse is the public view returned by the verify endpoint. It
// deliberately exposes no contact details.
type VerificationResponse struct {
	InternID  string              `json:"intern_id"`
	Name      string              `json:"name"`
	Domain    string              `json:"domain"`
	Phase     int                 `json:"phase"`
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Status    domain.InternStatus `json:"status"`
}

// InternStatsResponse aggregates dashboard counters.
type InternStatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// FromIntern maps a domain intern to its dashboard response.
func FromIntern(intern *domain.Intern) InternResponse {
	return InternResponse{
		ID:          intern.ID,
		InternID:    intern.InternID,
		Name:        intern.Name,
		Email:       intern.Email,
		Phone:       intern.Phone,
		Gender:      intern.Gender,
		Country:     intern.Country,
		Domain:      intern.Domain,
		Address:     intern.Address,
		College:     intern.College,
		Degree:      intern.Degree,
		YearOfStudy: intern.YearOfStudy,
		SocialMedia: intern.SocialMedia,
		AppliedAt:   intern.AppliedAt,
		Phase:       intern.Phase,
		StartDate:   intern.StartDate,
		EndDate:     intern.EndDate,
		Status:      intern.Status,
		OfferSent:   intern.OfferSent,
		CertSent:    intern.CertSent,
		CreatedAt:   intern.CreatedAt,
		UpdatedAt:   intern.UpdatedAt,
	}
}

// FromInterns maps a slice of interns.
func FromInterns(interns []domain.Intern) []InternResponse {
	out := make([]InternResponse, 0, len(interns))
	for i := range interns {
		out = append(out, FromIntern(&interns[i]))
	}
	return out
}

// FromInternVerification maps an intern to its public verification view.
func FromInternVerification(intern *domain.Intern) VerificationResponse {
	return VerificationResponse{
		InternID:  intern.InternID,
		Name:      intern.Name,
		Domain:    intern.Domain,
		Phase:     intern.Phase,
		StartDate: intern.StartDate,
		EndDate:   intern.EndDate,
		Status:    intern.Status,
	}
}
