package catalogmock

import (
	"context"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/serviceerr"
)

type ProviderOption func(*Provider)

type Provider struct {
	movies  []catalog.Movie
	persons []catalog.Person
	details map[int64]catalog.Person

	searchMoviesErr, searchPersonsErr, personDetailErr error
}

func WithMovies(movies ...catalog.Movie) ProviderOption {
	return func(p *Provider) { p.movies = movies }
}
func WithPersons(persons ...catalog.Person) ProviderOption {
	return func(p *Provider) { p.persons = persons }
}
func WithPersonDetail(person catalog.Person) ProviderOption {
	return func(p *Provider) { p.details[person.ID] = person }
}
func WithSearchMoviesError(err error) ProviderOption {
	return func(p *Provider) { p.searchMoviesErr = err }
}
func WithSearchPersonsError(err error) ProviderOption {
	return func(p *Provider) { p.searchPersonsErr = err }
}
func WithPersonDetailError(err error) ProviderOption {
	return func(p *Provider) { p.personDetailErr = err }
}

var _ = catalog.Provider(&Provider{})

func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		details: make(map[int64]catalog.Person),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Provider) SearchMovies(_ context.Context, _ string, limit int) ([]catalog.Movie, error) {
	if p.searchMoviesErr != nil {
		return nil, p.searchMoviesErr
	}
	if limit > len(p.movies) {
		limit = len(p.movies)
	}
	return p.movies[:limit], nil
}

func (p *Provider) SearchPersons(_ context.Context, _ string, limit int) ([]catalog.Person, error) {
	if p.searchPersonsErr != nil {
		return nil, p.searchPersonsErr
	}
	if limit > len(p.persons) {
		limit = len(p.persons)
	}
	return p.persons[:limit], nil
}

func (p *Provider) PersonDetail(_ context.Context, id int64) (catalog.Person, error) {
	if p.personDetailErr != nil {
		return catalog.Person{}, p.personDetailErr
	}
	if person, ok := p.details[id]; ok {
		return person, nil
	}
	return catalog.Person{}, serviceerr.ErrNotFound
}
