package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/userhub/internal/dashboard"
	"github.com/geocoder89/userhub/internal/domain/user"
)

// fake backend implementing just enough of the user API

func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": 1, "name": "John Doe", "email": "john@example.com", "role": "admin"},
				{"id": 2, "name": "Jane Smith", "email": "jane@example.com", "role": "user"},
			},
			"count": 2,
		})
	})

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_users":   2,
			"request_count": 17,
			"service_info": map[string]string{
				"name":        "backend-user-service",
				"version":     "1.0.0",
				"environment": "test",
			},
		})
	})

	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var req user.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"invalid_request","message":"Invalid request body"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(user.User{ID: 3, Name: req.Name, Email: req.Email, Role: "user"})
	})

	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "99999" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"User not found"}}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return httptest.NewServer(mux)
}

func TestClientListUsers(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()

	c := dashboard.NewClient(srv.URL)

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(users) != 2 || users[0].Name != "John Doe" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestClientStats(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()

	c := dashboard.NewClient(srv.URL)

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.TotalUsers != 2 || stats.ServiceInfo.Version != "1.0.0" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClientCreateUser(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()

	c := dashboard.NewClient(srv.URL)

	err := c.CreateUser(context.Background(), user.CreateUserRequest{
		Name:  "New User",
		Email: "new@example.com",
		Role:  "user",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
}

func TestClientCreateUserSurfacesBackendError(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()

	c := dashboard.NewClient(srv.URL)

	err := c.CreateUser(context.Background(), user.CreateUserRequest{Name: "No Email"})

	if err == nil {
		t.Fatal("expected an error for an invalid create")
	}
}

func TestClientDeleteUser(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()

	c := dashboard.NewClient(srv.URL)

	if err := c.DeleteUser(context.Background(), 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := c.DeleteUser(context.Background(), 99999); err == nil {
		t.Fatal("expected an error deleting an unknown id")
	}
}

func TestClientHealthy(t *testing.T) {
	srv := newFakeBackend(t)

	c := dashboard.NewClient(srv.URL)

	if !c.Healthy(context.Background()) {
		t.Fatal("expected healthy backend")
	}

	srv.Close()

	if c.Healthy(context.Background()) {
		t.Fatal("expected unhealthy after the backend went away")
	}
}
