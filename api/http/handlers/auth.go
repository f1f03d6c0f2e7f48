package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/authd/api/http/presenter"
	"github.com/mkraev/authd/pkg/auth"
	"github.com/mkraev/authd/pkg/security/token"
)

type AuthHandler struct {
	useCase auth.UseCase
}

func NewAuthHandler(useCase auth.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"max=200"`
}

// Register handles open user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	u, err := h.useCase.Register(c.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for an access/refresh token pair.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	pair, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toTokenResponse(pair))
}

// Refresh rotates a refresh token into a new token pair. The old refresh
// token is revoked when a refresh store is configured.
// @Summary Refresh token pair
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tok := token.BearerToken(c.Get(fiber.HeaderAuthorization))
	if tok == "" {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "missing bearer token")
	}
	pair, err := h.useCase.Refresh(c.Context(), tok)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toTokenResponse(pair))
}

// Me returns the authenticated principal.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, ok := token.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "not authenticated")
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}
