package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/authd/api/http/presenter"
	"github.com/mkraev/authd/pkg/security/token"
	"github.com/mkraev/authd/pkg/user"
)

type UserHandler struct {
	useCase user.UseCase
}

func NewUserHandler(useCase user.UseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

type createUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"max=200"`
	IsActive    *bool  `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Create adds a user on behalf of a superuser; unlike open registration it
// may set role flags.
// @Summary Create user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "user payload"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u, err := h.useCase.Create(c.Context(), user.CreateInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    active,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toUserResponse(u))
}

// List returns users ordered by id.
// @Summary List users
// @Tags    users
// @Produce json
// @Param   offset query int false "rows to skip"
// @Param   limit  query int false "page size (max 200)"
// @Security BearerAuth
// @Success 200 {array} map[string]any
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	users, err := h.useCase.List(c.Context(), offset, limit)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// GetByID returns a user. Non-superusers may only fetch themselves.
// @Summary Get user by ID
// @Tags    users
// @Produce json
// @Param   id path int true "user id"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	principal, ok := token.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "not authenticated")
	}
	id, err := parseUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid user id")
	}
	if id == principal.ID {
		return presenter.JSON(c, http.StatusOK, toUserResponse(principal))
	}
	if !principal.IsSuperuser {
		return presenter.Error(c, http.StatusForbidden, presenter.KindUnauthorized, "insufficient privileges")
	}
	u, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

type updateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	FullName    *string `json:"full_name" validate:"omitempty,max=200"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// Update applies a partial update to any user (superuser only).
// @Summary Update user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   id    path int               true "user id"
// @Param   input body updateUserRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid user id")
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	u, err := h.useCase.Update(c.Context(), id, user.UpdateInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

type updateMeRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
}

// UpdateMe lets the principal change own email, password or display name.
// Role flags are deliberately not updatable here.
// @Summary Update own profile
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body updateMeRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := token.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "not authenticated")
	}
	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	u, err := h.useCase.Update(c.Context(), principal.ID, user.UpdateInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

// Delete removes a user permanently (superuser only).
// @Summary Delete user
// @Tags    users
// @Param   id path int true "user id"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid user id")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
