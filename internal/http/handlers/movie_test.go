package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/db"
	apphttp "github.com/filmvault/theater-backend/internal/http"
	httpH "github.com/filmvault/theater-backend/internal/http/handlers"
	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/repos"
	"github.com/filmvault/theater-backend/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, services.MovieService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	log := logger.NewNop()
	service := services.NewMovieService(
		gdb,
		log,
		repos.NewMovieRepo(gdb, log),
		repos.NewCountryRepo(gdb, log),
		repos.NewGenreRepo(gdb, log),
		repos.NewActorRepo(gdb, log),
		repos.NewLanguageRepo(gdb, log),
	)

	router := apphttp.NewRouter(apphttp.RouterConfig{
		Log:           log,
		HealthHandler: httpH.NewHealthHandler(),
		MovieHandler:  httpH.NewMovieHandler(log, service),
	})
	return router, service
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createBody(name, date string) map[string]any {
	return map[string]any{
		"name":      name,
		"date":      date,
		"score":     82.4,
		"status":    "Released",
		"budget":    63000000,
		"revenue":   467222728,
		"country":   "US",
		"genres":    []string{"Action"},
		"actors":    []string{"Keanu Reeves"},
		"languages": []string{"English"},
	}
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateMovieEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/theater/movies/", createBody("The Matrix", "1999-03-31"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var detail services.MovieDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.NotZero(t, detail.ID)
	assert.Equal(t, "The Matrix", detail.Name)
	assert.Equal(t, "US", detail.Country.Code)
	require.Len(t, detail.Genres, 1)
	assert.Equal(t, "Action", detail.Genres[0].Name)
}

func TestCreateMovieEndpointValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	body := createBody("Bad", "2001-01-01")
	body["score"] = 101
	rec := doJSON(t, router, http.MethodPost, "/theater/movies/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = createBody("Bad", "2001-01-01")
	body["budget"] = -1
	rec = doJSON(t, router, http.MethodPost, "/theater/movies/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = createBody("No Country", "2001-01-01")
	delete(body, "country")
	rec = doJSON(t, router, http.MethodPost, "/theater/movies/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = createBody("Future", time.Now().AddDate(0, 0, 400).Format("2006-01-02"))
	rec = doJSON(t, router, http.MethodPost, "/theater/movies/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMovieEndpointConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/theater/movies/", createBody("The Matrix", "1999-03-31"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/theater/movies/", createBody("The Matrix", "1999-03-31"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestGetMovieEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	detail, err := service.Create(context.Background(), services.CreateMovieInput{
		Name: "Alien", Date: "1979-05-25", Score: 84, Status: "Released",
		Country: "GB", Genres: []string{"Horror"},
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/theater/movies/%d/", detail.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alien")

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/9999/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/abc/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMovieEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	detail, err := service.Create(context.Background(), services.CreateMovieInput{
		Name: "Alien", Date: "1979-05-25", Score: 84, Status: "Released", Country: "GB",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/theater/movies/%d/", detail.ID), map[string]any{"score": 50})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Movie updated successfully.")

	after, err := service.Get(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, after.Score)
	assert.Equal(t, "Alien", after.Name)

	rec = doJSON(t, router, http.MethodPatch, "/theater/movies/9999/", map[string]any{"score": 50})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/theater/movies/%d/", detail.ID), map[string]any{"score": 180})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMovieEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	detail, err := service.Create(context.Background(), services.CreateMovieInput{
		Name: "Alien", Date: "1979-05-25", Score: 84, Status: "Released", Country: "GB",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/theater/movies/%d/", detail.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/theater/movies/%d/", detail.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/theater/movies/%d/", detail.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMoviesEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/theater/movies/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for i := 0; i < 25; i++ {
		_, err := service.Create(context.Background(), services.CreateMovieInput{
			Name:    fmt.Sprintf("Movie %02d", i),
			Date:    "2001-01-01",
			Score:   50,
			Status:  "Released",
			Country: "US",
		})
		require.NoError(t, err)
	}

	var page services.MovieListResult
	rec = doJSON(t, router, http.MethodGet, "/theater/movies/?page=2&per_page=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Movies, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 25, page.TotalItems)
	require.NotNil(t, page.PrevPage)
	require.NotNil(t, page.NextPage)

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/?page=4&per_page=10", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/?per_page=21", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/theater/movies/?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
