package handler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/secure-admin/internal/model"
	"github.com/iliyamo/secure-admin/internal/repository"
)

// fakeUserStore is an in-memory UserStore mirroring the repository's
// contract, including its sentinel errors.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint64]model.User{}}
}

func (f *fakeUserStore) add(u model.User) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Email == strings.ToLower(u.Email) {
			return 0, repository.ErrEmailExists
		}
		if ex.Username == u.Username {
			return 0, repository.ErrUsernameExists
		}
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now().UTC()
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for id := uint64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) ListByRole(ctx context.Context, roleID uint64) ([]model.User, error) {
	all, _ := f.List(ctx)
	out := make([]model.User, 0, len(all))
	for _, u := range all {
		if u.RoleID == roleID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, id uint64, upd model.UserUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = strings.ToLower(*upd.Email)
	}
	if upd.Password != nil {
		u.PasswordHash = *upd.Password
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id, roleID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RoleID = roleID
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) UpdatePasswordByEmail(_ context.Context, email, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			u.PasswordHash = hash
			f.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeRoleStore is the RoleStore counterpart.
type fakeRoleStore struct {
	mu     sync.Mutex
	nextID uint64
	roles  map[uint64]model.Role
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{nextID: 1, roles: map[uint64]model.Role{}}
}

func (f *fakeRoleStore) Create(_ context.Context, description string, isActive bool) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.roles[id] = model.Role{ID: id, Description: description, IsActive: isActive, CreatedAt: time.Now().UTC()}
	return id, nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uint64) (model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[id]
	if !ok {
		return model.Role{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoleStore) List(_ context.Context) ([]model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Role, 0, len(f.roles))
	for id := uint64(1); id < f.nextID; id++ {
		if r, ok := f.roles[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoleStore) Update(_ context.Context, id uint64, upd model.RoleUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
	if upd.IsActive != nil {
		r.IsActive = *upd.IsActive
	}
	f.roles[id] = r
	return nil
}

func (f *fakeRoleStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}
