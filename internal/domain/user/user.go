package user

import (
	"errors"
	"time"
)

const DefaultRole = "user"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=120"`
	Email string `json:"email" binding:"required,min=3,max=254"`
	Role  string `json:"role" binding:"omitempty,max=40"`
}

// Partial update: nil fields are left untouched. A request with no fields at
// all is a no-op that still returns the current record.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email *string `json:"email" binding:"omitempty,min=3,max=254"`
	Role  *string `json:"role" binding:"omitempty,max=40"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Role == nil
}
