package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
)

// MovieHandler exposes CRUD over the movie catalog.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(movies *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

type movieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	DurationMin uint32 `json:"duration_min"`
	Genre       string `json:"genre"`
	AgeRating   string `json:"age_rating"`
}

func (req *movieRequest) toDomain(id uint64) *domain.Movie {
	return &domain.Movie{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		DurationMin: req.DurationMin,
		Genre:       req.Genre,
		AgeRating:   req.AgeRating,
	}
}

func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	m := req.toDomain(0)
	if err := m.Validate(); err != nil {
		return fail(c, err)
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	m := req.toDomain(id)
	if err := m.Validate(); err != nil {
		return fail(c, err)
	}
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
