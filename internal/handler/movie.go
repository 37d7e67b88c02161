package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/moviweb/internal/model"
	"github.com/iliyamo/moviweb/internal/omdb"
	"github.com/iliyamo/moviweb/internal/repository"
)

// Enricher looks up canonical metadata for a movie title. It is
// satisfied by *omdb.Client; tests substitute a stub.
type Enricher interface {
	Lookup(ctx context.Context, title string) (*omdb.Movie, error)
}

// MovieHandler bundles dependencies for movie endpoints.
type MovieHandler struct {
	Users    *repository.UserRepo
	Movies   *repository.MovieRepo
	Enricher Enricher
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(u *repository.UserRepo, m *repository.MovieRepo, e Enricher) *MovieHandler {
	return &MovieHandler{Users: u, Movies: m, Enricher: e}
}

// ----- DTOs -----

type addMovieReq struct {
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}

// updateMovieReq uses pointers so an absent JSON key is
// distinguishable from an explicit zero: nil leaves the field
// untouched, a present value is validated and written as-is.
type updateMovieReq struct {
	Title    *string  `json:"title"`
	Director *string  `json:"director"`
	Year     *int     `json:"year"`
	Rating   *float64 `json:"rating"`
}

// addMovieResp carries the persisted movie plus an optional warning
// when enrichment was skipped or failed. Enrichment failures never
// fail the request.
type addMovieResp struct {
	Movie   model.Movie `json:"movie"`
	Warning string      `json:"warning,omitempty"`
}

// ListForUser handles GET /v1/users/:id/movies. Answers 404 when the
// user does not exist and an empty list when they simply have no
// movies.
func (h *MovieHandler) ListForUser(c echo.Context) error {
	userID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get user failed"})
	}

	movies, err := h.Movies.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// Add handles POST /v1/users/:id/movies. Input is validated first,
// then a single OMDb lookup may override the supplied metadata; on a
// miss or transport failure the user's values are kept and the
// response carries a warning.
func (h *MovieHandler) Add(c echo.Context) error {
	userID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req addMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validName(req.Title, maxTitleLen) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must be 1-100 characters"})
	}
	if !validDirector(req.Director) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "director must contain letters and spaces only"})
	}
	if !validYear(req.Year) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be between 1900 and 2100"})
	}
	if !validRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get user failed"})
	}

	m := model.Movie{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Rating:   req.Rating,
		UserID:   userID,
	}
	warning := h.enrich(ctx, &m)

	if err := h.Movies.Create(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, addMovieResp{Movie: m, Warning: warning})
}

// enrich performs the single best-effort OMDb lookup for m and
// overrides its metadata with whatever usable fields come back.
// Unusable fields ("N/A" or unparsable) keep the user's values. The
// returned warning is empty when enrichment succeeded.
func (h *MovieHandler) enrich(ctx context.Context, m *model.Movie) string {
	found, err := h.Enricher.Lookup(ctx, m.Title)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			return "no OMDb match for this title; stored the values you supplied"
		}
		return "OMDb lookup failed; stored the values you supplied"
	}

	if found.Title != omdb.NotAvailable {
		m.Title = found.Title
	}
	if found.Director != omdb.NotAvailable {
		m.Director = found.Director
	}
	if y, err := strconv.Atoi(found.Year); err == nil {
		m.Year = y
	}
	if r, err := strconv.ParseFloat(found.Rating, 64); err == nil {
		m.Rating = r
	}
	return ""
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// Update handles PATCH /v1/movies/:id. Only fields present in the
// body are validated and written; everything else is preserved.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && !validName(*req.Title, maxTitleLen) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must be 1-100 characters"})
	}
	if req.Director != nil && !validDirector(*req.Director) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "director must contain letters and spaces only"})
	}
	if req.Year != nil && !validYear(*req.Year) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be between 1900 and 2100"})
	}
	if req.Rating != nil && !validRating(*req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	upd := repository.MovieUpdate{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Rating:   req.Rating,
	}
	if err := h.Movies.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/movies/:id. Idempotent; always 204.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
