package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository layer; handlers define
// separate response types that never expose the password hash.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name of the user.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  RoleID       – foreign key into the roles table.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	RoleID       uint64    // users.role_id (references roles.id)
}

// UserUpdate carries a partial update of a user. Each field is a
// pointer so that absent JSON keys stay nil and only the supplied
// columns are written. The field set is exactly the mutable set;
// role changes go through the dedicated change-role operation
// which runs under its own guards.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil &&
		u.Name == nil && u.IsActive == nil
}
