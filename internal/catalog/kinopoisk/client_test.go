package kinopoisk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegram/cinegram/internal/catalog"
)

func TestSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.4/movie/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Матрица", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"docs": [{
				"id": 301,
				"name": "Матрица",
				"year": 1999,
				"description": "Жизнь Томаса Андерсона разделена на две части",
				"genres": [{"name": "фантастика"}, {"name": "боевик"}],
				"countries": [{"name": "США"}],
				"poster": {"url": "https://example.com/matrix.jpg"},
				"rating": {"kp": 8.5, "imdb": 8.7, "filmCritics": 7.8, "russianFilmCritics": 0}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", srv.Client())

	movies, err := client.SearchMovies(t.Context(), "Матрица", 5)

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, catalog.Movie{
		ID:          301,
		Name:        "Матрица",
		Year:        1999,
		Description: "Жизнь Томаса Андерсона разделена на две части",
		Genres:      []string{"фантастика", "боевик"},
		Countries:   []string{"США"},
		PosterURL:   "https://example.com/matrix.jpg",
		Rating:      catalog.Rating{Kp: 8.5, IMDb: 8.7, FilmCritics: 7.8},
	}, movies[0])
}

func TestSearchPersons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.4/person/search", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"docs": [{
				"id": 660,
				"name": "Киану Ривз",
				"enName": "Keanu Reeves",
				"sex": "Мужской",
				"growth": 186,
				"birthday": "1964-09-02T00:00:00.000Z",
				"age": 60,
				"photo": "https://example.com/photo.jpg"
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", srv.Client())

	persons, err := client.SearchPersons(t.Context(), "Киану", 1)

	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, int64(660), persons[0].ID)
	assert.Equal(t, "Keanu Reeves", persons[0].EnName)
	require.NotNil(t, persons[0].Age)
	assert.Equal(t, 60, *persons[0].Age)
}

func TestPersonDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.4/person/660", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 660,
			"name": "Киану Ривз",
			"birthPlace": [{"value": "Бейрут"}, {"value": "Ливан"}],
			"countAwards": 12,
			"spouses": [{"relation": "Алехандра Грант", "divorced": false, "children": 0}],
			"facts": [{"value": "Факт один"}],
			"movies": [{"name": "Матрица", "rating": 8.5}, {"name": null, "rating": null}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", srv.Client())

	person, err := client.PersonDetail(t.Context(), 660)

	require.NoError(t, err)
	assert.Equal(t, []string{"Бейрут", "Ливан"}, person.BirthPlaces)
	require.NotNil(t, person.CountAwards)
	assert.Equal(t, 12, *person.CountAwards)
	require.Len(t, person.Spouses, 1)
	assert.Equal(t, "Алехандра Грант", person.Spouses[0].Relation)
	assert.Equal(t, []string{"Факт один"}, person.Facts)
	require.Len(t, person.Movies, 2)
	assert.Equal(t, "Матрица", person.Movies[0].Name)
	require.NotNil(t, person.Movies[0].Rating)
	assert.Equal(t, 8.5, *person.Movies[0].Rating)
	assert.Empty(t, person.Movies[1].Name)
}

func TestProviderErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", srv.Client())

	_, err := client.SearchMovies(t.Context(), "Матрица", 5)

	var provErr *catalog.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusForbidden, provErr.Status)
	assert.EqualError(t, err, "catalog responded with status 403")
}

func TestDecodeErrorOnBrokenBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"docs": [`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", srv.Client())

	_, err := client.SearchMovies(t.Context(), "Матрица", 5)

	assert.ErrorContains(t, err, "decoding catalog response")
}
