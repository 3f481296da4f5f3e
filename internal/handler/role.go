package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-admin/internal/model"
	"github.com/iliyamo/secure-admin/internal/repository"
)

// RoleHandler implements role CRUD. Listing and viewing are open to
// any authenticated requester; writes require a privileged role, which
// the route middleware enforces.
type RoleHandler struct {
	Roles RoleStore
	Users UserStore
}

func NewRoleHandler(roles RoleStore, users UserStore) *RoleHandler {
	return &RoleHandler{Roles: roles, Users: users}
}

type createRoleReq struct {
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// roleView mirrors the role record for responses.
type roleView struct {
	ID          uint64    `json:"id"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// roleWithUsers additionally embeds the (sanitized) holders of the role.
type roleWithUsers struct {
	roleView
	Users []userView `json:"users"`
}

func viewRole(r model.Role) roleView {
	return roleView{ID: r.ID, Description: r.Description, IsActive: r.IsActive, CreatedAt: r.CreatedAt}
}

// Create inserts a new role. Status defaults to active.
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Roles.Create(ctx, req.Description, active)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create role failed"})
	}
	return c.JSON(http.StatusCreated, roleView{
		ID:          id,
		Description: req.Description,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	})
}

// List returns all roles together with the users holding each one.
func (h *RoleHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Roles.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roleWithUsers, 0, len(roles))
	for _, r := range roles {
		users, err := h.Users.ListByRole(ctx, r.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		out = append(out, roleWithUsers{roleView: viewRole(r), Users: sanitizeUsers(users)})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one role and its users.
func (h *RoleHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	r, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Role not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	users, err := h.Users.ListByRole(ctx, r.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, roleWithUsers{roleView: viewRole(r), Users: sanitizeUsers(users)})
}

// Update applies a partial update to a role.
func (h *RoleHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var upd model.RoleUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if upd.Description == nil && upd.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Role not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "Role updated successfully"})
}

// Delete removes a role by id.
func (h *RoleHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Role not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete role failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "Role deleted successfully"})
}
