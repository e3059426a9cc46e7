package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/service"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// AuthHandler manages login and the caller's own profile.
type AuthHandler struct {
	authService         *service.AuthService
	notificationService *service.NotificationService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, notificationService *service.NotificationService) *AuthHandler {
	return &AuthHandler{authService: authService, notificationService: notificationService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, person, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Person:    personResponse(person),
	}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	return c.JSON(fiber.Map{"data": personResponse(principal.Person)})
}

// RegisterDevice POST /auth/devices.
func (h *AuthHandler) RegisterDevice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sub, err := h.notificationService.RegisterDevice(c.Context(), principal.Person.ID, req.PlayerID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":        sub.ID,
		"player_id": sub.PlayerID,
	}})
}

func personResponse(p *domain.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		IsAdmin:   p.IsAdmin,
	}
}
