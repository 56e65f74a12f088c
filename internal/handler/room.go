package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
)

// RoomHandler manages rooms and their seat layouts.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

type roomRequest struct {
	Number uint32 `json:"number"`
	Name   string `json:"name"`
}

func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	room := &domain.Room{Number: req.Number, Name: req.Name}
	if err := room.Validate(); err != nil {
		return fail(c, err)
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Rooms.GetWithSeats(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	room := &domain.Room{ID: id, Number: req.Number, Name: req.Name}
	if err := room.Validate(); err != nil {
		return fail(c, err)
	}
	if err := h.Rooms.Update(c.Request().Context(), room); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type seatRequest struct {
	RowLabel   string `json:"row_label"`
	Number     uint32 `json:"number"`
	SeatTypeID uint64 `json:"seat_type_id"`
}

type addSeatsRequest struct {
	Seats []seatRequest `json:"seats"`
}

// AddSeats bulk-inserts seats into a room's layout.
func (h *RoomHandler) AddSeats(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req addSeatsRequest
	if err := c.Bind(&req); err != nil || len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one seat is required"})
	}
	seats := make([]domain.Seat, 0, len(req.Seats))
	for _, sr := range req.Seats {
		seat := domain.Seat{RoomID: roomID, RowLabel: sr.RowLabel, Number: sr.Number, SeatTypeID: sr.SeatTypeID}
		if err := seat.Validate(); err != nil {
			return fail(c, err)
		}
		seats = append(seats, seat)
	}
	if err := h.Rooms.CreateSeats(c.Request().Context(), roomID, seats); err != nil {
		return fail(c, err)
	}
	created, err := h.Rooms.SeatsByRoom(c.Request().Context(), roomID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"seats": created})
}

// ListSeats returns a room's seat layout.
func (h *RoomHandler) ListSeats(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seats, err := h.Rooms.SeatsByRoom(c.Request().Context(), roomID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": seats})
}

// DeleteSeat removes one seat; seats referenced by tickets are protected.
func (h *RoomHandler) DeleteSeat(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seatID, err := pathID(c, "seat_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Rooms.DeleteSeat(c.Request().Context(), roomID, seatID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
