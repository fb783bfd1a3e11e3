package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/types"
)

func seedMovie(t *testing.T, gdb *gorm.DB, name string, date time.Time, genres ...string) *types.Movie {
	t.Helper()
	ctx := context.Background()

	country, err := NewCountryRepo(gdb, newTestLogger()).GetOrCreate(ctx, nil, "US")
	require.NoError(t, err)

	genreRepo := NewGenreRepo(gdb, newTestLogger())
	rows := make([]types.Genre, 0, len(genres))
	for _, g := range genres {
		genre, err := genreRepo.GetOrCreate(ctx, nil, g)
		require.NoError(t, err)
		rows = append(rows, *genre)
	}

	movie := &types.Movie{
		Name:      name,
		Date:      date,
		Score:     71.5,
		Status:    "Released",
		Budget:    1000000,
		Revenue:   2500000,
		CountryID: country.ID,
		Genres:    rows,
	}
	_, err = NewMovieRepo(gdb, newTestLogger()).Create(ctx, nil, movie)
	require.NoError(t, err)
	return movie
}

func TestMovieGetByIDHydratesRelations(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())
	ctx := context.Background()

	date := time.Date(1998, 6, 5, 0, 0, 0, 0, time.UTC)
	created := seedMovie(t, gdb, "The Truman Show", date, "Drama", "Comedy")

	movie, err := repo.GetByID(ctx, nil, created.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	require.NotNil(t, movie.Country)
	assert.Equal(t, "US", movie.Country.Code)
	assert.Len(t, movie.Genres, 2)
}

func TestMovieGetByIDMissing(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())

	movie, err := repo.GetByID(context.Background(), nil, 42)
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestMovieExistsByNameAndDate(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())
	ctx := context.Background()

	date := time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)
	seedMovie(t, gdb, "Inception", date)

	exists, err := repo.ExistsByNameAndDate(ctx, nil, "Inception", date)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNameAndDate(ctx, nil, "Inception", date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMovieListPageNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())
	ctx := context.Background()

	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedMovie(t, gdb, fmt.Sprintf("Movie %d", i), base.AddDate(0, 0, i))
	}

	rows, err := repo.ListPage(ctx, nil, 0, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Movie 4", rows[0].Name)
	assert.Equal(t, "Movie 3", rows[1].Name)
	assert.Equal(t, "Movie 2", rows[2].Name)

	rows, err = repo.ListPage(ctx, nil, 3, 3)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Movie 1", rows[0].Name)

	count, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestMovieUpdateFieldsPartial(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())
	ctx := context.Background()

	date := time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
	created := seedMovie(t, gdb, "The Matrix", date)

	err := repo.UpdateFields(ctx, nil, created.ID, map[string]interface{}{"score": 88.0})
	require.NoError(t, err)

	movie, err := repo.GetByID(ctx, nil, created.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, 88.0, movie.Score)
	assert.Equal(t, "The Matrix", movie.Name)
	assert.Equal(t, "Released", movie.Status)
}

func TestMovieDeleteKeepsReferenceRows(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewMovieRepo(gdb, newTestLogger())
	ctx := context.Background()

	date := time.Date(1994, 9, 23, 0, 0, 0, 0, time.UTC)
	created := seedMovie(t, gdb, "The Shawshank Redemption", date, "Drama")

	movie, err := repo.GetByID(ctx, nil, created.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)

	require.NoError(t, repo.Delete(ctx, nil, movie))

	gone, err := repo.GetByID(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var joinRows int64
	require.NoError(t, gdb.Table("movie_genres").Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	var genres, countries int64
	require.NoError(t, gdb.Model(&types.Genre{}).Count(&genres).Error)
	require.NoError(t, gdb.Model(&types.Country{}).Count(&countries).Error)
	assert.EqualValues(t, 1, genres)
	assert.EqualValues(t, 1, countries)
}
