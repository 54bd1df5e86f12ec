package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/geocoder89/userhub/internal/cache"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const usersListCacheKey = "users:list"

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type UsersHandler struct {
	store UsersStore
	cache *cache.Cache
}

func NewUsersHandler(store UsersStore) *UsersHandler {
	return &UsersHandler{store: store}
}

func NewUsersHandlerWithCache(store UsersStore, c *cache.Cache) *UsersHandler {
	return &UsersHandler{store: store, cache: c}
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.store.Create(ctx.Request.Context(), req)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	if h.cache != nil {
		if v, ok := h.cache.Get(usersListCacheKey); ok {
			RespondJSONWithETag(ctx, http.StatusOK, v)
			return
		}
	}

	users, err := h.store.List(ctx.Request.Context())

	if err != nil {
		RespondInternal(ctx, "Could not list users")

		return
	}

	payload := gin.H{
		"users": users,
		"count": len(users),
	}

	if h.cache != nil {
		h.cache.Set(usersListCacheKey, payload)
	}

	RespondJSONWithETag(ctx, http.StatusOK, payload)
}

func (h *UsersHandler) GetUserById(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	u, err := h.store.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.store.Update(ctx.Request.Context(), id, req)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update user")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	err := h.store.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not delete user")
		return
	}

	h.invalidate()

	ctx.Status(http.StatusNoContent)
}

// ids are positive integers assigned by the store; anything else in the path
// is a malformed request rather than a missing record.
func parseUserID(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid user id", gin.H{"id": raw})
		return 0, false
	}

	return id, true
}

func (h *UsersHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}
