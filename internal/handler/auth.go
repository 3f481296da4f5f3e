package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-admin/internal/config"
	"github.com/iliyamo/secure-admin/internal/middleware"
	"github.com/iliyamo/secure-admin/internal/model"
	"github.com/iliyamo/secure-admin/internal/queue"
	"github.com/iliyamo/secure-admin/internal/repository"
	"github.com/iliyamo/secure-admin/internal/token"
	"github.com/iliyamo/secure-admin/internal/utils"
)

// ResetPublisher dispatches a password-reset event toward the mail
// collaborator. Wired to the RabbitMQ publisher in main; tests plug in
// a capture function.
type ResetPublisher func(ctx context.Context, ev queue.PasswordResetEvent) error

// AuthHandler bundles dependencies for the auth endpoints: login,
// registration and the two-phase password-reset flow.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Issuer  *token.Issuer
	Publish ResetPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, issuer *token.Issuer, publish ResetPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Issuer: issuer, Publish: publish}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	RoleID   uint64 `json:"role_id"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Register: create a user after checking both unique fields, reporting
// which one collided. The storage-level unique keys stay authoritative
// under concurrent registrations; a duplicate that slips past the
// lookups still maps to the same conflict response.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	if req.RoleID == 0 {
		req.RoleID = 3 // ordinary user
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Users.GetByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Username already registered"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	u := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsActive:     true,
		RoleID:       req.RoleID,
	}
	id, err := h.Users.Create(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u.ID = id
	u.CreatedAt = time.Now().UTC()

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User successfully registered",
		"user":    sanitizeUser(u),
	})
}

// Login: verify credentials and return a session token. Lookup miss
// and password mismatch produce the same response so the endpoint does
// not reveal which of the two failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	signed, _, err := h.Issuer.Session(u.Username, u.ID, u.RoleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login successfully completed",
		"access_token": signed,
		"user":         sanitizeUser(u),
	})
}

// ForgotPassword: first phase of the reset flow. Issues a reset token
// bound to the email and hands it to the mail queue. Note that a
// missing account answers 404 while a known one answers 200, so the
// endpoint discloses which emails are registered; kept as deployed.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	signed, exp, err := h.Issuer.Reset(u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	// Delivery is fire-and-forget: a broker or SMTP failure is logged
	// by the publisher/consumer and never fails this request.
	if h.Publish != nil {
		ev := queue.PasswordResetEvent{
			Email:       u.Email,
			Token:       signed,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
			ExpiresAt:   exp.Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("forgot-password: publish reset mail for %s failed: %v", u.Email, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset email sent"})
}

// ResetPassword: second phase. The token must verify, be unexpired,
// carry the reset purpose and embed the supplied email; any failure is
// the same generic invalid-token answer. The update is all-or-nothing:
// the stored hash changes only after the token fully validates. A
// token remains exchangeable until expiry — there is no single-use
// invalidation (kept as deployed).
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Token == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/token/new_password required"})
	}

	claims, err := h.Issuer.ParseReset(req.Token)
	if err != nil || claims.Email != email {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired reset token"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired reset token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

// Me: return the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sanitizeUser(u))
}
