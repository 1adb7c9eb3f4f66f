package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegram/cinegram/internal/catalog"
	catalogmock "github.com/cinegram/cinegram/internal/catalog/mock"
	"github.com/cinegram/cinegram/internal/engine"
	"github.com/cinegram/cinegram/internal/favorites"
	favoritesmock "github.com/cinegram/cinegram/internal/favorites/mock"
	"github.com/cinegram/cinegram/internal/session"
	"github.com/cinegram/cinegram/internal/transport"
	transportmock "github.com/cinegram/cinegram/internal/transport/mock"
)

const userID = int64(42)

type fixture struct {
	engine *engine.Engine
	sink   *transportmock.Sink
	store  *session.MemoryStore
	repo   *favoritesmock.Repository
}

func newFixture(t *testing.T, providerOpts []catalogmock.ProviderOption, repoOpts ...favoritesmock.RepositoryOption) *fixture {
	t.Helper()

	sink := transportmock.NewSink()
	store := session.NewMemoryStore(0)
	repo := favoritesmock.NewInMemRepository(repoOpts...)

	return &fixture{
		engine: engine.New(
			store,
			catalogmock.NewProvider(providerOpts...),
			favorites.NewCoordinator(repo),
			sink,
			engine.WithPacing(0),
		),
		sink:  sink,
		store: store,
		repo:  repo,
	}
}

func (f *fixture) command(t *testing.T, name engine.Command) {
	t.Helper()
	f.engine.Handle(t.Context(), engine.Event{
		UserID:  userID,
		Profile: favorites.User{ID: userID, FirstName: "Иван", LastName: "Петров"},
		Payload: engine.CommandPayload{Name: name},
	})
}

func (f *fixture) text(t *testing.T, value string) {
	t.Helper()
	f.engine.Handle(t.Context(), engine.Event{
		UserID:  userID,
		Payload: engine.TextPayload{Value: value},
	})
}

func (f *fixture) selectAction(t *testing.T, sel engine.Selection) {
	f.selectActionFrom(t, sel, 0)
}

func (f *fixture) selectActionFrom(t *testing.T, sel engine.Selection, ref transport.MessageRef) {
	t.Helper()
	f.engine.Handle(t.Context(), engine.Event{
		UserID:  userID,
		Ref:     ref,
		Payload: engine.SelectionPayload{Selection: sel},
	})
}

func (f *fixture) state(t *testing.T) session.State {
	t.Helper()
	sess, err := f.store.Load(t.Context(), userID)
	require.NoError(t, err)
	return sess.State
}

func testMovies() []catalog.Movie {
	return []catalog.Movie{
		{ID: 301, Name: "Матрица", Year: 1999, Description: "Хакер Нео", Genres: []string{"фантастика"}, Countries: []string{"США"}, PosterURL: "https://example.com/matrix.jpg"},
		{ID: 302, Name: "Матрица: Перезагрузка", Year: 2003},
	}
}

func TestStartCommand(t *testing.T) {
	f := newFixture(t, nil)

	f.command(t, engine.CommandStart)

	last := f.sink.LastSent()
	assert.Contains(t, last.Text, "Привет! <b>Иван</b> <b>Петров</b>")
	assert.Contains(t, last.Text, "Cinegram")
	assert.True(t, last.Affordances.MainMenu)
	assert.Equal(t, session.StateIdle, f.state(t))
}

func TestMovieSearchHappyPath(t *testing.T) {
	f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	assert.Contains(t, f.sink.LastSent().Text, "Введите название фильма")
	assert.Equal(t, session.StateAwaitingQuery, f.state(t))

	f.text(t, "Матрица")
	limitPrompt := f.sink.LastSent()
	assert.Contains(t, limitPrompt.Text, "Сколько фильмов искать")
	assert.Equal(t, []int{1, 3, 5, 10, 15, 20}, limitPrompt.Affordances.LimitChoices)
	assert.Equal(t, session.StateAwaitingLimit, f.state(t))

	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 3})

	sent := f.sink.SentMessages()
	require.GreaterOrEqual(t, len(sent), 5)

	// The limit prompt and the progress message get deleted.
	assert.Contains(t, f.sink.Deleted(), limitPrompt.Ref)

	first := sent[len(sent)-3]
	assert.Equal(t, "https://example.com/matrix.jpg", first.ImageRef)
	assert.Contains(t, first.Text, "Матрица")
	assert.Equal(t, int64(301), first.Affordances.AddToFavorites)

	last := f.sink.LastSent()
	assert.Contains(t, last.Text, "Все фильмы отправлены")
	assert.True(t, last.Affordances.MainMenu)
	assert.Equal(t, session.StateResultsPresented, f.state(t))
}

func TestMovieSearchNoResults(t *testing.T) {
	f := newFixture(t, nil)

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	f.text(t, "Несуществующий")
	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 5})

	last := f.sink.LastSent()
	assert.Contains(t, last.Text, "Не удалось найти информацию о фильме")
	assert.Contains(t, last.Text, "Несуществующий")
	assert.Equal(t, session.StateIdle, f.state(t))
}

func TestMovieSearchProviderFailure(t *testing.T) {
	f := newFixture(t, []catalogmock.ProviderOption{
		catalogmock.WithSearchMoviesError(&catalog.ProviderError{Status: 502}),
	})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	f.text(t, "Матрица")
	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 5})

	assert.Contains(t, f.sink.LastSent().Text, "Поиск не удался")
	assert.Equal(t, session.StateIdle, f.state(t))
}

func TestInvalidQueryRePrompts(t *testing.T) {
	f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	f.text(t, "Матрица!!!")

	assert.Contains(t, f.sink.LastSent().Text, "Запрос может содержать")
	assert.Equal(t, session.StateAwaitingQuery, f.state(t), "invalid input keeps the prompt state")

	f.text(t, "Матрица")
	assert.Equal(t, session.StateAwaitingLimit, f.state(t))
}

func TestUnknownLimitIsIgnored(t *testing.T) {
	f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	f.text(t, "Матрица")
	before := len(f.sink.SentMessages())

	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 7})

	assert.Len(t, f.sink.SentMessages(), before, "a forged limit produces no messages")
	assert.Equal(t, session.StateAwaitingLimit, f.state(t))
}

func TestFreeTextInIdleIsIgnored(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "привет")

	assert.Empty(t, f.sink.SentMessages())
	assert.Equal(t, session.StateIdle, f.state(t))
}

func TestPersonSearchAndDetail(t *testing.T) {
	age := 50
	rating := 8.7
	person := catalog.Person{ID: 660, Name: "Киану Ривз", Sex: "Мужской", Age: &age, PhotoURL: "https://example.com/photo.jpg"}
	detail := person
	detail.Facts = []string{"Родился в Бейруте"}
	detail.Movies = []catalog.Credit{{Name: "Матрица", Rating: &rating}}

	f := newFixture(t, []catalogmock.ProviderOption{
		catalogmock.WithPersons(person),
		catalogmock.WithPersonDetail(detail),
	})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchPersons})
	assert.Contains(t, f.sink.LastSent().Text, "Введите имя")

	f.text(t, "Киану Ривз")
	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 1})

	sent := f.sink.SentMessages()
	card := sent[len(sent)-2]
	assert.Equal(t, int64(660), card.Affordances.DetailView)
	assert.Equal(t, session.StateResultsPresented, f.state(t))

	f.selectActionFrom(t, engine.Selection{Action: engine.ActionPersonDetail, ItemID: 660}, card.Ref)

	last := f.sink.LastSent()
	assert.Contains(t, last.Text, "Родился в Бейруте")
	assert.True(t, last.Affordances.ShowFilmography)
	assert.Contains(t, f.sink.Deleted(), card.Ref, "the search card is removed after opening the detail view")

	f.selectAction(t, engine.Selection{Action: engine.ActionShowFilmography})
	assert.Contains(t, f.sink.LastSent().Text, "<code>Матрица</code> (⭐8.7)")
}

func TestAddFavorite(t *testing.T) {
	presentResults := func(t *testing.T, f *fixture) transport.MessageRef {
		t.Helper()
		f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
		f.text(t, "Матрица")
		f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 3})
		sent := f.sink.SentMessages()
		return sent[len(sent)-3].Ref
	}

	t.Run("adds and strips the button", func(t *testing.T) {
		f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})
		cardRef := presentResults(t, f)

		f.selectActionFrom(t, engine.Selection{Action: engine.ActionAddFavorite, ItemID: 301}, cardRef)

		assert.Contains(t, f.sink.LastSent().Text, `Фильм "Матрица" добавлен в избранное!`)
		edited, ok := f.sink.Edited(cardRef)
		require.True(t, ok)
		assert.True(t, edited.IsZero())
	})

	t.Run("duplicate add reported as such", func(t *testing.T) {
		f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})
		cardRef := presentResults(t, f)

		f.selectActionFrom(t, engine.Selection{Action: engine.ActionAddFavorite, ItemID: 301}, cardRef)
		f.selectActionFrom(t, engine.Selection{Action: engine.ActionAddFavorite, ItemID: 301}, cardRef)

		assert.Contains(t, f.sink.LastSent().Text, `уже находится в избранном`)
	})

	t.Run("full list rejected", func(t *testing.T) {
		var opts []favoritesmock.RepositoryOption
		for i := range favorites.MaxEntries {
			opts = append(opts, favoritesmock.WithEntry(favorites.Entry{
				UserID: userID, MovieID: int64(1000 + i), Title: "Фильм",
			}))
		}
		f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)}, opts...)
		cardRef := presentResults(t, f)

		f.selectActionFrom(t, engine.Selection{Action: engine.ActionAddFavorite, ItemID: 301}, cardRef)

		assert.Contains(t, f.sink.LastSent().Text, "не можете добавить больше 10")
	})

	t.Run("movie outside the result set", func(t *testing.T) {
		f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})
		cardRef := presentResults(t, f)

		f.selectActionFrom(t, engine.Selection{Action: engine.ActionAddFavorite, ItemID: 999}, cardRef)

		assert.Contains(t, f.sink.LastSent().Text, "не удалось найти фильм")
	})
}

func TestFavoritesFlow(t *testing.T) {
	seed := func(t *testing.T, titles ...string) *fixture {
		t.Helper()
		var opts []favoritesmock.RepositoryOption
		for i, title := range titles {
			opts = append(opts, favoritesmock.WithEntry(favorites.Entry{
				UserID: userID, MovieID: int64(i + 1), Title: title, ReleaseYear: 2000,
			}))
		}
		return newFixture(t, nil, opts...)
	}

	t.Run("empty list", func(t *testing.T) {
		f := newFixture(t, nil)

		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})

		assert.Contains(t, f.sink.LastSent().Text, "Ваше избранное пусто!")
	})

	t.Run("list and delete by numbers", func(t *testing.T) {
		f := seed(t, "Брат", "Брат 2", "Жмурки")

		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		view := f.sink.LastSent()
		assert.Contains(t, view.Text, "1. <code>Брат</code>")
		assert.Contains(t, view.Text, "3. <code>Жмурки</code>")
		assert.True(t, view.Affordances.DeleteFavorites)

		f.selectAction(t, engine.Selection{Action: engine.ActionDeleteFavorites})
		assert.Contains(t, f.sink.LastSent().Text, "Введите номер фильма")
		assert.Equal(t, session.StateAwaitingDeletion, f.state(t))

		f.text(t, "1, 3")
		assert.Contains(t, f.sink.LastSent().Text, `Фильмы "Брат, Жмурки" успешно удалены`)
		assert.Equal(t, session.StateIdle, f.state(t))

		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		view = f.sink.LastSent()
		assert.Contains(t, view.Text, "1. <code>Брат 2</code>")
		assert.NotContains(t, view.Text, "Жмурки")
	})

	t.Run("invalid numbers re-prompt", func(t *testing.T) {
		f := seed(t, "Брат")
		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		f.selectAction(t, engine.Selection{Action: engine.ActionDeleteFavorites})

		f.text(t, "раз, два")

		assert.Contains(t, f.sink.LastSent().Text, "введите корректные номера")
		assert.Equal(t, session.StateAwaitingDeletion, f.state(t))
	})

	t.Run("positions outside the snapshot", func(t *testing.T) {
		f := seed(t, "Брат")
		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		f.selectAction(t, engine.Selection{Action: engine.ActionDeleteFavorites})

		f.text(t, "2, 5")

		assert.Contains(t, f.sink.LastSent().Text, "Фильмы с номерами 2, 5 не найдены.")
		assert.Equal(t, session.StateAwaitingDeletion, f.state(t))
	})

	t.Run("clear all", func(t *testing.T) {
		f := seed(t, "Брат", "Брат 2")
		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		f.selectAction(t, engine.Selection{Action: engine.ActionDeleteFavorites})

		f.selectAction(t, engine.Selection{Action: engine.ActionClearFavorites})

		assert.Contains(t, f.sink.LastSent().Text, "успешно очищены")
		assert.Equal(t, session.StateIdle, f.state(t))

		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		assert.Contains(t, f.sink.LastSent().Text, "Ваше избранное пусто!")
	})

	t.Run("cancel deletion", func(t *testing.T) {
		f := seed(t, "Брат")
		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		f.selectAction(t, engine.Selection{Action: engine.ActionDeleteFavorites})

		f.selectAction(t, engine.Selection{Action: engine.ActionCancelDeletion})

		assert.Contains(t, f.sink.LastSent().Text, "Удаление отменено.")
		assert.Equal(t, session.StateIdle, f.state(t))
	})

	t.Run("clear fires from any state", func(t *testing.T) {
		f := seed(t, "Брат")

		// A tap on an old clear button, without the deletion prompt.
		f.selectAction(t, engine.Selection{Action: engine.ActionClearFavorites})

		assert.Contains(t, f.sink.LastSent().Text, "успешно очищены")
		assert.Equal(t, session.StateIdle, f.state(t))

		f.selectAction(t, engine.Selection{Action: engine.ActionViewFavorites})
		assert.Contains(t, f.sink.LastSent().Text, "Ваше избранное пусто!")
	})
}

// sessionResettingProvider mimics a second bot instance processing a newer
// command while the catalog call is in flight: it resets the shared session
// before returning the results.
type sessionResettingProvider struct {
	catalog.Provider
	store *session.MemoryStore
}

func (p *sessionResettingProvider) SearchMovies(ctx context.Context, query string, limit int) ([]catalog.Movie, error) {
	if err := p.store.Save(ctx, session.Session{UserID: userID, State: session.StateIdle}); err != nil {
		return nil, err
	}
	return p.Provider.SearchMovies(ctx, query, limit)
}

func TestStaleSearchResponseDropped(t *testing.T) {
	sink := transportmock.NewSink()
	store := session.NewMemoryStore(0)
	provider := &sessionResettingProvider{
		Provider: catalogmock.NewProvider(catalogmock.WithMovies(testMovies()...)),
		store:    store,
	}
	f := &fixture{
		engine: engine.New(store, provider, favorites.NewCoordinator(favoritesmock.NewInMemRepository()), sink, engine.WithPacing(0)),
		sink:   sink,
		store:  store,
	}

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})
	f.text(t, "Матрица")
	f.selectAction(t, engine.Selection{Action: engine.ActionLimit, Limit: 3})

	searching := f.sink.LastSent()
	assert.Contains(t, searching.Text, "Начинаю поиск", "no result card follows a dropped response")
	assert.Contains(t, f.sink.Deleted(), searching.Ref, "the progress message does not outlive a dropped response")
	assert.Equal(t, session.StateIdle, f.state(t))
}

func TestCrossUserIsolation(t *testing.T) {
	f := newFixture(t, []catalogmock.ProviderOption{catalogmock.WithMovies(testMovies()...)})

	f.selectAction(t, engine.Selection{Action: engine.ActionSearchMovies})

	// A second user's text must not be treated as the first user's query.
	f.engine.Handle(t.Context(), engine.Event{
		UserID:  userID + 1,
		Payload: engine.TextPayload{Value: "Матрица"},
	})

	assert.Equal(t, session.StateAwaitingQuery, f.state(t))
	other, err := f.store.Load(t.Context(), userID+1)
	require.NoError(t, err)
	assert.Equal(t, session.StateIdle, other.State)
}
