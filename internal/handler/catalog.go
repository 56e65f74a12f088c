package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
)

// CatalogHandler manages the two pricing catalogs: seat types and
// exhibition types. Prices are decimal strings in requests ("25.00")
// and 2-decimal numbers in responses.
type CatalogHandler struct {
	SeatTypes       *repository.SeatTypeRepo
	ExhibitionTypes *repository.ExhibitionTypeRepo
}

func NewCatalogHandler(st *repository.SeatTypeRepo, et *repository.ExhibitionTypeRepo) *CatalogHandler {
	return &CatalogHandler{SeatTypes: st, ExhibitionTypes: et}
}

type catalogRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type priceRequest struct {
	Price string `json:"price"`
}

// --- seat types ---

func (h *CatalogHandler) CreateSeatType(c echo.Context) error {
	var req catalogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	price, err := domain.ParseMoney(req.Price)
	if err != nil {
		return fail(c, err)
	}
	st, err := domain.NewSeatType(req.Name, price)
	if err != nil {
		return fail(c, err)
	}
	if err := h.SeatTypes.Create(c.Request().Context(), st); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *CatalogHandler) ListSeatTypes(c echo.Context) error {
	types, err := h.SeatTypes.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_types": types})
}

// UpdateSeatTypePrice changes a tier's price. Zero or negative prices are
// rejected, so every assembled ticket price stays positive.
func (h *CatalogHandler) UpdateSeatTypePrice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req priceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	price, err := domain.ParseMoney(req.Price)
	if err != nil {
		return fail(c, err)
	}
	st, err := h.SeatTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if err := st.SetPrice(price); err != nil {
		return fail(c, err)
	}
	if err := h.SeatTypes.UpdatePrice(c.Request().Context(), id, st.Price); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *CatalogHandler) DeleteSeatType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.SeatTypes.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- exhibition types ---

func (h *CatalogHandler) CreateExhibitionType(c echo.Context) error {
	var req catalogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	price, err := domain.ParseMoney(req.Price)
	if err != nil {
		return fail(c, err)
	}
	et, err := domain.NewExhibitionType(req.Name, price)
	if err != nil {
		return fail(c, err)
	}
	if err := h.ExhibitionTypes.Create(c.Request().Context(), et); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, et)
}

func (h *CatalogHandler) ListExhibitionTypes(c echo.Context) error {
	types, err := h.ExhibitionTypes.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"exhibition_types": types})
}

func (h *CatalogHandler) UpdateExhibitionTypePrice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req priceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	price, err := domain.ParseMoney(req.Price)
	if err != nil {
		return fail(c, err)
	}
	et, err := h.ExhibitionTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if err := et.SetPrice(price); err != nil {
		return fail(c, err)
	}
	if err := h.ExhibitionTypes.UpdatePrice(c.Request().Context(), id, et.Price); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, et)
}

func (h *CatalogHandler) DeleteExhibitionType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.ExhibitionTypes.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
