package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/service"
)

// SessionHandler manages movie sessions. Creation and rescheduling go
// through the service so the room-overlap guard always runs.
type SessionHandler struct {
	Sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

type sessionRequest struct {
	MovieID          uint64    `json:"movie_id"`
	RoomID           uint64    `json:"room_id"`
	ExhibitionTypeID uint64    `json:"exhibition_type_id"`
	StartsAt         time.Time `json:"starts_at"`
	DurationMin      uint32    `json:"duration_min"`
}

func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	sess, err := h.Sessions.Create(c.Request().Context(),
		req.MovieID, req.RoomID, req.ExhibitionTypeID, req.StartsAt, req.DurationMin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	sess, err := h.Sessions.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// List returns sessions, filtered by ?room_id= when present.
func (h *SessionHandler) List(c echo.Context) error {
	var roomID uint64
	if err := echo.QueryParamsBinder(c).Uint64("room_id", &roomID).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
	}
	sessions, err := h.Sessions.List(c.Request().Context(), roomID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

func (h *SessionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	sess, err := h.Sessions.Update(c.Request().Context(), id,
		req.MovieID, req.RoomID, req.ExhibitionTypeID, req.StartsAt, req.DurationMin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Finish closes a session for further bookings. The transition is
// one-way; finishing twice returns 409.
func (h *SessionHandler) Finish(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Sessions.Finish(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_finished": true})
}

// SeatMap returns the per-seat occupancy of a session, derived from its
// sold ticket seats.
func (h *SessionHandler) SeatMap(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seatMap, err := h.Sessions.SeatMap(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"session_id": id, "seats": seatMap})
}

func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
