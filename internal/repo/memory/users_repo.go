package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
)

// UsersRepo is the in-memory user store. It owns the id counter: ids are
// assigned monotonically starting at 1 and never reused, even after deletes.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
	order  []int64 // insertion order for List
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	role := req.Role

	if role == "" {
		role = user.DefaultRole
	}

	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	u := user.User{
		ID:        r.nextID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.nextID++
	r.items[u.ID] = u
	r.order = append(r.order, u.ID)

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))

	for _, id := range r.order {
		if u, ok := r.items[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

func (r *UsersRepo) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if req.Empty() {
		// nothing to apply, return the record as is
		return u, nil
	}

	if req.Name != nil {
		u.Name = *req.Name
	}

	if req.Email != nil {
		u.Email = *req.Email
	}

	if req.Role != nil {
		u.Role = *req.Role
	}

	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return user.ErrNotFound
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *UsersRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// SeedDemoUsers loads the two demo records the dashboard expects in a fresh
// dev environment. Intended to be called once at startup.
func SeedDemoUsers(ctx context.Context, r *UsersRepo) error {
	demo := []user.CreateUserRequest{
		{Name: "John Doe", Email: "john@example.com", Role: "admin"},
		{Name: "Jane Smith", Email: "jane@example.com", Role: "user"},
	}

	for _, req := range demo {
		if _, err := r.Create(ctx, req); err != nil {
			return err
		}
	}

	return nil
}
