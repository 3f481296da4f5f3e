package handler // handler defines http handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-admin/internal/model"
)

// UserStore is the slice of the user repository the handlers depend on.
// Declared here so tests can substitute an in-memory fake for *sql.DB.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, roleID uint64) ([]model.User, error)
	Update(ctx context.Context, id uint64, upd model.UserUpdate) error
	UpdateRole(ctx context.Context, id, roleID uint64) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id uint64) error
}

// RoleStore is the role repository counterpart of UserStore.
type RoleStore interface {
	Create(ctx context.Context, description string, isActive bool) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, id uint64, upd model.RoleUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// userView is the user shape returned to callers. The credential hash
// never appears here, on any path.
type userView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	RoleID    uint64    `json:"role_id"`
}

func sanitizeUser(u model.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		RoleID:    u.RoleID,
	}
}

func sanitizeUsers(us []model.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, sanitizeUser(u))
	}
	return out
}

// reqCtx bounds a handler's database work the way every handler in
// this service does: five seconds from the request context.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}
