package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-service/internal/api/dto"
	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/repository"
	"github.com/spec-kit/internship-service/internal/service"
)

// InternsHandler exposes intern management and public verification endpoints.
type InternsHandler struct {
	interns *service.InternService
}

// NewInternsHandler constructs handler.
func NewInternsHandler(internService *service.InternService) *InternsHandler {
	return &InternsHandler{interns: internService}
}

// Verify handles GET /api/verify/:internId. Public, no authentication.
func (h *InternsHandler) Verify(c *fiber.Ctx) error {
	intern, err := h.interns.VerifyInternID(c.Context(), c.Params("internId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInternVerification(intern)})
}

// Create handles POST /api/admin/interns.
func (h *InternsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInternRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	intern, err := h.interns.CreateIntern(c.Context(), service.InternCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Domain:      req.Domain,
		Gender:      req.Gender,
		Country:     req.Country,
		Address:     req.Address,
		College:     req.College,
		Degree:      req.Degree,
		YearOfStudy: req.YearOfStudy,
		SocialMedia: req.SocialMedia,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromIntern(intern)})
}

// List handles GET /api/admin/interns.
func (h *InternsHandler) List(c *fiber.Ctx) error {
	filter := repository.InternFilter{}
	if status := c.Query("status"); status != "" {
		s := domain.InternStatus(status)
		filter.Status = &s
	}
	if d := c.Query("domain"); d != "" {
		filter.Domain = &d
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	interns, err := h.interns.ListInterns(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInterns(interns)})
}

// Get handles GET /api/admin/interns/:id.
func (h *InternsHandler) Get(c *fiber.Ctx) error {
	intern, err := h.interns.GetIntern(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromIntern(intern)})
}

// Update handles PATCH /api/admin/interns/:id.
func (h *InternsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateInternRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	intern, err := h.interns.UpdateIntern(c.Context(), c.Params("id"), service.InternUpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Status:      req.Status,
		Gender:      req.Gender,
		Country:     req.Country,
		Address:     req.Address,
		College:     req.College,
		Degree:      req.Degree,
		YearOfStudy: req.YearOfStudy,
		SocialMedia: req.SocialMedia,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromIntern(intern)})
}

// Delete handles DELETE /api/admin/interns/:id.
func (h *InternsHandler) Delete(c *fiber.Ctx) error {
	if err := h.interns.DeleteIntern(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Stats handles GET /api/admin/interns/stats.
func (h *InternsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.interns.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.InternStatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Active:    stats.Active,
		Completed: stats.Completed,
	}})
}

// SendOfferLetter handles POST /api/admin/interns/:id/offer-letter.
func (h *InternsHandler) SendOfferLetter(c *fiber.Ctx) error {
	intern, err := h.interns.SendOfferLetter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromIntern(intern)})
}

// SendCertificate handles POST /api/admin/interns/:id/certificate.
func (h *InternsHandler) SendCertificate(c *fiber.Ctx) error {
	intern, err := h.interns.SendCertificate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromIntern(intern)})
}

// PreviewOfferLetter handles GET /api/admin/interns/:id/offer-letter/preview.
func (h *InternsHandler) PreviewOfferLetter(c *fiber.Ctx) error {
	html, err := h.interns.PreviewOfferLetter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// PreviewCertificate handles GET /api/admin/interns/:id/certificate/preview.
func (h *InternsHandler) PreviewCertificate(c *fiber.Ctx) error {
	html, err := h.interns.PreviewCertificate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
