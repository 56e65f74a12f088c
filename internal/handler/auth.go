package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/config"
	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/middleware"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
	"github.com/guilhermereis1k/oscar-cinema/internal/utils"
)

// AuthHandler implements registration, login and the refresh-token
// lifecycle. Access tokens are short-lived JWTs; refresh tokens are
// opaque values stored hashed in the database and rotated on every use.
type AuthHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    config.Config
}

func NewAuthHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a customer account. The document must be a valid CPF;
// duplicates on email or document are rejected.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	user, err := domain.NewUser(req.Name, req.Document, strings.ToLower(strings.TrimSpace(req.Email)), domain.RoleUser)
	if err != nil {
		return fail(c, err)
	}
	if _, err := h.Users.Create(c.Request().Context(), user, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email or document already registered"})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": user.ID, "email": user.Email})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	ctx := c.Request().Context()
	user, hash, err := h.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !utils.VerifyPassword(hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !user.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
	}
	return h.issueTokens(c, user)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued. A revoked or expired token yields 401.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	ctx := c.Request().Context()
	tokenHash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, tokenHash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, tokenHash); err != nil {
		return fail(c, err)
	}
	return h.issueTokens(c, user)
}

// Logout revokes all refresh tokens of the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Tokens.RevokeAllForUser(c.Request().Context(), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Users.GetByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueTokens(c echo.Context, user *domain.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, string(user.Role),
		time.Duration(h.Cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return fail(c, err)
	}
	raw, hash, err := utils.NewRefreshToken()
	if err != nil {
		return fail(c, err)
	}
	exp := time.Now().UTC().Add(time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour)
	if err := h.Tokens.StoreRefresh(c.Request().Context(), user.ID, hash, exp); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access,
		"refresh_token": raw,
		"token_type":    "Bearer",
		"expires_in":    h.Cfg.AccessTTLMin * 60,
	})
}
