package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/middleware"
	"github.com/guilhermereis1k/oscar-cinema/internal/service"
)

// TicketHandler exposes the booking flow and ticket queries.
type TicketHandler struct {
	Tickets *service.TicketService
}

func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{Tickets: tickets}
}

type seatSelectionRequest struct {
	SeatID     uint64 `json:"seat_id"`
	TicketType string `json:"ticket_type"`
}

type bookingRequest struct {
	SessionID     uint64                 `json:"session_id"`
	PaymentMethod string                 `json:"payment_method"`
	Seats         []seatSelectionRequest `json:"seats"`
}

// Create books seats on a session for the authenticated user. A seat
// taken between the availability check and the insert surfaces as 409.
func (h *TicketHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	selections := make([]domain.SeatSelection, 0, len(req.Seats))
	for _, sr := range req.Seats {
		tt, err := domain.ParseTicketType(sr.TicketType)
		if err != nil {
			return fail(c, err)
		}
		selections = append(selections, domain.SeatSelection{SeatID: sr.SeatID, Type: tt})
	}
	ticket, err := h.Tickets.Create(c.Request().Context(), req.SessionID, middleware.UserID(c), method, selections)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

// Mine lists the authenticated user's tickets, newest first.
func (h *TicketHandler) Mine(c echo.Context) error {
	tickets, err := h.Tickets.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Get returns one ticket. Customers can only read their own tickets;
// staff can read any.
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ticket, err := h.Tickets.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	role := middleware.RoleOf(c)
	if ticket.UserID != middleware.UserID(c) && role != string(domain.RoleAdmin) && role != string(domain.RoleEmployee) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your ticket"})
	}
	return c.JSON(http.StatusOK, ticket)
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// SetPaymentStatus updates a ticket's payment state; paid mirrors the
// APPROVED status.
func (h *TicketHandler) SetPaymentStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req paymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	status, err := domain.ParsePaymentStatus(req.Status)
	if err != nil {
		return fail(c, err)
	}
	ticket, err := h.Tickets.SetPaymentStatus(c.Request().Context(), id, status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}
