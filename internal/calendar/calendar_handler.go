package calendar

import (
	"net/http"
	"time"

	"teampulse/internal/event"
	"teampulse/internal/leave"
	"teampulse/internal/shared/response"
	"teampulse/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	leaves leave.Service
	events event.Service
	logger *zap.Logger
}

func NewHandler(leaves leave.Service, events event.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{leaves: leaves, events: events, logger: l}
}

// View renders day buckets for the requested range. Managers see every
// leave request and may filter by team; team members only see their own.
func (h *Handler) View(c *gin.Context) {
	ctx := c.Request.Context()
	role := c.GetString("role")
	actorID := c.GetString("user_id")

	view := c.DefaultQuery("view", ViewMonth)
	if view != ViewDay && view != ViewWeek && view != ViewMonth {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "view must be one of day, week, month", nil)
		return
	}

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
			return
		}
		anchor = parsed
	}

	leaveType := c.Query("leave_type")
	eventType := c.Query("event_type")
	if leaveType != "" && eventType != "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "leave_type and event_type are mutually exclusive", nil)
		return
	}

	var filter Filter = AllFilter{}
	if leaveType != "" {
		filter = LeaveTypeFilter{Kind: leaveType}
	} else if eventType != "" {
		filter = EventTypeFilter{Kind: eventType}
	}

	team := c.Query("team")
	if team != "" && role != user.RoleManager {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "team filter requires manager role", nil)
		return
	}

	var (
		leaveRows []leave.LeaveResponse
		err       error
	)
	if role == user.RoleManager {
		leaveRows, err = h.leaves.ListAll(ctx)
	} else {
		leaveRows, err = h.leaves.ListMine(ctx, actorID)
	}
	if err != nil {
		h.logger.Error("calendar leave fetch failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	eventRows, err := h.events.ListAll(ctx)
	if err != nil {
		h.logger.Error("calendar event fetch failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	start, end := RangeFor(view, anchor)
	buckets := Buckets(start, end, leaveRows, eventRows, filter, team)

	response.Success(c, http.StatusOK, gin.H{
		"view":       view,
		"range_from": start.Format(dateLayout),
		"range_to":   end.Format(dateLayout),
		"days":       buckets,
	}, nil)
}
