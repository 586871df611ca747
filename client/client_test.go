package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"teampulse/client"
	"teampulse/internal/leave"
	"teampulse/internal/notification"
	"teampulse/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":    false,
		"error": map[string]any{"code": code, "message": message},
	})
}

func loggedInClient(t *testing.T, baseURL string, role string) *client.Client {
	t.Helper()
	store := client.NewMemorySessionStore()
	assert.NoError(t, store.Save(&client.Session{
		Token: "test-token",
		User:  user.PublicUser{ID: uuid.New().String(), Name: "Tester", Role: role},
	}))
	return client.New(baseURL, store)
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "manager@example.com", req["email"])

		writeEnvelope(w, http.StatusOK, map[string]any{
			"token": "issued-token",
			"user":  map[string]any{"id": uuid.New().String(), "name": "John Manager", "role": user.RoleManager},
		})
	}))
	defer srv.Close()

	store := client.NewMemorySessionStore()
	c := client.New(srv.URL, store)

	session, err := c.Login(context.Background(), "manager@example.com", "password")
	assert.NoError(t, err)
	assert.Equal(t, "issued-token", session.Token)
	assert.Equal(t, user.RoleManager, session.User.Role)

	stored, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "issued-token", stored.Token)
}

func TestClient_LoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "AUTH_FAILED", "Invalid email or password")
	}))
	defer srv.Close()

	store := client.NewMemorySessionStore()
	c := client.New(srv.URL, store)

	_, err := c.Login(context.Background(), "manager@example.com", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	session, _ := store.Load()
	assert.Nil(t, session)
}

func TestClient_LeavesCaching(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/leaves":
			hits.Add(1)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, []leave.LeaveResponse{
				{ID: "l1", Status: leave.StatusPending},
				{ID: "l2", Status: leave.StatusApproved},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/leaves":
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			writeEnvelope(w, http.StatusCreated, leave.LeaveResponse{ID: "l3", Status: leave.StatusPending})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
		}
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL, user.RoleManager)
	ctx := context.Background()

	first, err := c.Leaves(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	// Second read is served from the cache.
	_, err = c.Leaves(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	pending, err := c.PendingLeaves(ctx)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, "l1", pending[0].ID)

	// A mutation invalidates; the next read refetches.
	_, err = c.CreateLeave(ctx, leave.CreateLeaveRequest{
		LeaveType: "vacation",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-02",
	})
	assert.NoError(t, err)

	_, err = c.Leaves(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_CreateLeaveRetryKeepsIdempotencyKey(t *testing.T) {
	var mu sync.Mutex
	var keys []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		drop := len(keys) == 1
		mu.Unlock()

		if drop {
			// Kill the connection so the client sees a transport error
			// instead of an HTTP response.
			hj, ok := w.(http.Hijacker)
			assert.True(t, ok)
			conn, _, err := hj.Hijack()
			assert.NoError(t, err)
			_ = conn.Close()
			return
		}

		writeEnvelope(w, http.StatusCreated, leave.LeaveResponse{ID: "l9", Status: leave.StatusPending})
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL, user.RoleTeamMember)

	created, err := c.CreateLeave(context.Background(), leave.CreateLeaveRequest{
		LeaveType: "vacation",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-02",
	})
	assert.NoError(t, err)
	assert.Equal(t, "l9", created.ID)

	// The retry must carry the same key so the server can deduplicate.
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	}))
	defer srv.Close()

	store := client.NewMemorySessionStore()
	assert.NoError(t, store.Save(&client.Session{Token: "stale"}))
	c := client.New(srv.URL, store)

	_, err := c.MyLeaves(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	session, _ := store.Load()
	assert.Nil(t, session)

	_, err = c.MyLeaves(context.Background())
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestClient_NotificationPatches(t *testing.T) {
	var listHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/notifications":
			listHits.Add(1)
			writeEnvelope(w, http.StatusOK, []notification.NotificationResponse{
				{ID: "n1", Read: false, Title: "first"},
				{ID: "n2", Read: false, Title: "second"},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/notifications/n1/read":
			writeEnvelope(w, http.StatusOK, map[string]any{"read": true})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/notifications/n2":
			writeEnvelope(w, http.StatusOK, map[string]any{"deleted": true})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
		}
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL, user.RoleTeamMember)
	ctx := context.Background()

	unread, err := c.UnreadCount(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, unread)

	// Mark-read and delete patch the cache in place, no refetch.
	assert.NoError(t, c.MarkNotificationRead(ctx, "n1"))
	assert.NoError(t, c.DeleteNotification(ctx, "n2"))

	all, err := c.Notifications(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "n1", all[0].ID)
	assert.True(t, all[0].Read)
	assert.Equal(t, int32(1), listHits.Load())
}

func TestClient_APIErrorSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "start_date must be before or equal end_date")
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL, user.RoleTeamMember)

	_, err := c.CreateLeave(context.Background(), leave.CreateLeaveRequest{
		LeaveType: "vacation",
		StartDate: "2026-03-05",
		EndDate:   "2026-03-01",
	})

	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "INVALID_INPUT", apiErr.Code)
}
