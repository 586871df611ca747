package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"teampulse/internal/leave"
	leaveerrors "teampulse/internal/leave/errors"
	"teampulse/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn   func(ctx context.Context, userID string, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error)
	listAllFn  func(ctx context.Context) ([]leave.LeaveResponse, error)
	listMineFn func(ctx context.Context, userID string) ([]leave.LeaveResponse, error)
	decideFn   func(ctx context.Context, leaveID string, req leave.DecideLeaveRequest) (*leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, userID string, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
	return f.createFn(ctx, userID, req)
}
func (f *fakeLeaveService) ListAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.listAllFn(ctx)
}
func (f *fakeLeaveService) ListMine(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	return f.listMineFn(ctx, userID)
}
func (f *fakeLeaveService) Decide(ctx context.Context, leaveID string, req leave.DecideLeaveRequest) (*leave.LeaveResponse, error) {
	return f.decideFn(ctx, leaveID, req)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, userID string, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
				assert.Equal(t, actorID, userID)
				assert.Equal(t, "vacation", req.LeaveType)
				return &leave.LeaveResponse{
					ID:        uuid.New().String(),
					UserID:    userID,
					LeaveType: req.LeaveType,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					Reason:    req.Reason,
					Status:    leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"vacation","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, actorID, got.UserID)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("unknown leave type rejected by binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"sabbatical","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error mapped to envelope", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, userID string, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
				return nil, leaveerrors.ErrInvalidDateRange
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"vacation","start_date":"2026-03-12","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestLeaveHandler_Create_IdempotencyCycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	actorID := uuid.New().String()
	leaveID := uuid.New().String()

	calls := 0
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, userID string, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
			calls++
			return &leave.LeaveResponse{
				ID:        leaveID,
				UserID:    userID,
				LeaveType: req.LeaveType,
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
				Status:    leave.StatusPending,
			}, nil
		},
	}

	router := gin.New()
	router.POST("/leaves",
		func(c *gin.Context) { c.Set("user_id", actorID) },
		middleware.Idempotency(rdb),
		leave.NewHandlerWithRedis(svc, rdb).Create,
	)

	body := `{"leave_type":"vacation","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family trip"}`
	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "retry-key-1")
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, calls)

	// The in-flight lock is released once the handler finishes, so a
	// legitimate retry is never rejected as still processing.
	assert.False(t, mr.Exists("idemp:/leaves:"+actorID+":retry-key-1:lock"))

	// A retry with the same key replays the stored response and never
	// reaches the service again.
	second := send()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls)

	env := decodeEnvelope(t, second.Body.Bytes())
	assert.True(t, env.Ok)
	var got leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, leaveID, got.ID)

	// A fresh key is a new request.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "retry-key-2")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, calls)
}

func TestLeaveHandler_GetAll(t *testing.T) {
	makeRows := func(n int) []leave.LeaveResponse {
		rows := make([]leave.LeaveResponse, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, leave.LeaveResponse{
				ID:     uuid.New().String(),
				UserID: uuid.New().String(),
				Status: leave.StatusPending,
			})
		}
		return rows
	}

	t.Run("paginates in memory", func(t *testing.T) {
		svc := &fakeLeaveService{
			listAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				return makeRows(25), nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=20", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		svc := &fakeLeaveService{
			listAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				return makeRows(3), nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=9", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []leave.LeaveResponse
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Empty(t, got)
	})
}

func TestLeaveHandler_GetMine(t *testing.T) {
	actorID := uuid.New().String()

	svc := &fakeLeaveService{
		listMineFn: func(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, actorID, userID)
			return []leave.LeaveResponse{
				{ID: uuid.New().String(), UserID: userID, Status: leave.StatusApproved},
			}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/my-leaves", nil)
	c.Set("user_id", actorID)

	h.GetMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, actorID, got[0].UserID)
}

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id string, req leave.DecideLeaveRequest) (*leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.StatusApproved, req.Status)
				return &leave.LeaveResponse{ID: id, Status: req.Status, ManagerComment: req.Comment}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID, strings.NewReader(`{"status":"approved","comment":"ok"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("invalid status rejected by binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x", strings.NewReader(`{"status":"cancelled"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already decided maps to invalid state", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id string, req leave.DecideLeaveRequest) (*leave.LeaveResponse, error) {
				return nil, leaveerrors.ErrAlreadyDecided
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		leaveID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID, strings.NewReader(`{"status":"rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
