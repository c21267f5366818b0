package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-service/internal/api/dto"
	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/repository"
	"github.com/spec-kit/internship-service/internal/service"
)

// ContactsHandler exposes the public contact form and its dashboard review.
type ContactsHandler struct {
	contacts *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{contacts: contactService}
}

// Submit handles POST /api/contact. Public, no authentication.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contacts.SubmitContact(c.Context(), service.ContactCreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromContact(contact)})
}

// List handles GET /api/admin/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	filter := repository.ContactFilter{}
	if status := c.Query("status"); status != "" {
		s := domain.ContactStatus(status)
		filter.Status = &s
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	contacts, err := h.contacts.ListContacts(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContacts(contacts)})
}

// Get handles GET /api/admin/contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	contact, err := h.contacts.GetContact(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContact(contact)})
}

// UpdateStatus handles PATCH /api/admin/contacts/:id/status.
func (h *ContactsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contacts.UpdateContactStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContact(contact)})
}

// Stats handles GET /api/admin/contacts/stats.
func (h *ContactsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.contacts.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ContactStatsResponse{
		Total:     stats.Total,
		New:       stats.New,
		Read:      stats.Read,
		Responded: stats.Responded,
	}})
}

// Delete handles DELETE /api/admin/contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	if err := h.contacts.DeleteContact(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
