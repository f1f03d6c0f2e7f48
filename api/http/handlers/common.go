package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/authd/api/http/presenter"
	"github.com/mkraev/authd/pkg/auth"
	"github.com/mkraev/authd/pkg/user"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// userResponse is the public representation of a user. The password hash
// never appears here.
type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func toTokenResponse(pair auth.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	}
}

// domainError translates service-layer errors into the response taxonomy.
// Anything unclassified becomes a generic 500 without internal details.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, presenter.KindNotFound, "user not found")
	case errors.Is(err, user.ErrEmailTaken):
		return presenter.Error(c, http.StatusConflict, presenter.KindConflict, "a user with this email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "incorrect email or password")
	case errors.Is(err, auth.ErrInactiveUser):
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "inactive user")
	case errors.Is(err, auth.ErrInvalidRefresh):
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthenticated, "invalid or expired refresh token")
	default:
		return presenter.Error(c, http.StatusInternalServerError, presenter.KindInternal, "internal server error")
	}
}

func validationError(c *fiber.Ctx, err error) error {
	msg := "invalid request"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg = "invalid field: " + verrs[0].Field()
	}
	return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, msg)
}
