package instrumented

import (
	"context"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/observability"
)

type store interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

// UsersStore decorates a store with per-op prometheus counters.
type UsersStore struct {
	next store
	prom *observability.Prom
}

func NewUsersStore(next store, prom *observability.Prom) *UsersStore {
	return &UsersStore{next: next, prom: prom}
}

func (s *UsersStore) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	var u user.User

	err := s.prom.ObserveStore("create", func() error {
		var err error
		u, err = s.next.Create(ctx, req)
		return err
	})

	return u, err
}

func (s *UsersStore) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := s.prom.ObserveStore("get", func() error {
		var err error
		u, err = s.next.GetByID(ctx, id)
		return err
	})

	return u, err
}

func (s *UsersStore) List(ctx context.Context) ([]user.User, error) {
	var users []user.User

	err := s.prom.ObserveStore("list", func() error {
		var err error
		users, err = s.next.List(ctx)
		return err
	})

	return users, err
}

func (s *UsersStore) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error) {
	var u user.User

	err := s.prom.ObserveStore("update", func() error {
		var err error
		u, err = s.next.Update(ctx, id, req)
		return err
	})

	return u, err
}

func (s *UsersStore) Delete(ctx context.Context, id int64) error {
	return s.prom.ObserveStore("delete", func() error {
		return s.next.Delete(ctx, id)
	})
}
