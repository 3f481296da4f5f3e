package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/secure-admin/internal/model"
)

const userColumns = "id,username,email,password_hash,name,is_active,created_at,role_id"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. The password must already
// be hashed by the caller; this layer never sees plaintext. Duplicate
// key violations are mapped to the matching sentinel so handlers can
// report which field collided even when a concurrent registration slips
// past the application-level existence check.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, name, is_active, role_id) VALUES (?,?,?,?,?,?)",
		u.Username, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Name, u.IsActive, u.RoleID)
	if err != nil {
		if dup := dupKeyErr(err); dup != nil {
			return 0, dup
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.RoleID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListByRole returns all users holding the given role.
func (r *UserRepo) ListByRole(ctx context.Context, roleID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE role_id=? ORDER BY id", roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.RoleID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update applies a partial update. Supplied password values must arrive
// pre-hashed in upd.Password. Returns ErrNotFound when the id does not
// match any row and the duplicate-key sentinels on unique collisions.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd model.UserUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if upd.Username != nil {
		sets = append(sets, "username=?")
		args = append(args, *upd.Username)
	}
	if upd.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.Password != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *upd.Password)
	}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if dup := dupKeyErr(err); dup != nil {
			return dup
		}
		return err
	}
	return requireRow(res)
}

// UpdateRole changes only the role_id of a user.
func (r *UserRepo) UpdateRole(ctx context.Context, id, roleID uint64) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET role_id=? WHERE id=?", roleID, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdatePasswordByEmail overwrites the stored credential hash for the
// account registered under the given email. Used by the reset flow.
func (r *UserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE email=?", passwordHash, email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *UserRepo) get(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.RoleID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// dupKeyErr maps a MySQL duplicate-entry error (1062) to the sentinel
// for the colliding unique key, or returns nil for other errors.
func dupKeyErr(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return nil
	}
	msg := strings.ToLower(me.Message)
	switch {
	case strings.Contains(msg, "username"):
		return ErrUsernameExists
	case strings.Contains(msg, "email"):
		return ErrEmailExists
	}
	return ErrEmailExists
}

// requireRow converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
