package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/filmvault/theater-backend/internal/http/response"
	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/services"
)

const (
	defaultPerPage = 10
	maxPerPage     = 20
)

type MovieHandler struct {
	log          *logger.Logger
	movieService services.MovieService
}

func NewMovieHandler(log *logger.Logger, movieService services.MovieService) *MovieHandler {
	return &MovieHandler{
		log:          log.With("handler", "MovieHandler"),
		movieService: movieService,
	}
}

func (h *MovieHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok || page < 1 {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("Invalid input data."))
		return
	}
	perPage, ok := queryInt(c, "per_page", defaultPerPage)
	if !ok || perPage < 1 || perPage > maxPerPage {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("Invalid input data."))
		return
	}

	result, err := h.movieService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *MovieHandler) Create(c *gin.Context) {
	var in services.CreateMovieInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("Invalid input data."))
		return
	}

	movie, err := h.movieService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, movie)
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	movie, err := h.movieService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, movie)
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.UpdateMovieInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("Invalid input data."))
		return
	}

	if err := h.movieService.Update(c.Request.Context(), id, in); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"detail": "Movie updated successfully."})
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.movieService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", errors.New("Invalid movie id."))
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
