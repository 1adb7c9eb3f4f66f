package kinopoisk

import "github.com/cinegram/cinegram/internal/catalog"

// Wire types. Subset of the Kinopoisk v1.4 payloads the bot renders.

type namedValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type movieDoc struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Year        int          `json:"year"`
	Description string       `json:"description"`
	Genres      []namedValue `json:"genres"`
	Countries   []namedValue `json:"countries"`
	Poster      *struct {
		URL string `json:"url"`
	} `json:"poster"`
	Rating struct {
		Kp                 float64 `json:"kp"`
		IMDb               float64 `json:"imdb"`
		FilmCritics        float64 `json:"filmCritics"`
		RussianFilmCritics float64 `json:"russianFilmCritics"`
	} `json:"rating"`
}

type personDoc struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	EnName      string       `json:"enName"`
	Sex         string       `json:"sex"`
	Growth      int          `json:"growth"`
	Birthday    string       `json:"birthday"`
	Death       string       `json:"death"`
	Age         *int         `json:"age"`
	Photo       string       `json:"photo"`
	BirthPlace  []namedValue `json:"birthPlace"`
	CountAwards *int         `json:"countAwards"`
	Spouses     []struct {
		Relation string `json:"relation"`
		Divorced bool   `json:"divorced"`
		Children *int   `json:"children"`
	} `json:"spouses"`
	Facts []namedValue `json:"facts"`
	Movies []struct {
		Name   string   `json:"name"`
		Rating *float64 `json:"rating"`
	} `json:"movies"`
}

func (d movieDoc) toDomain() catalog.Movie {
	m := catalog.Movie{
		ID:          d.ID,
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
		Genres:      names(d.Genres),
		Countries:   names(d.Countries),
		Rating: catalog.Rating{
			Kp:                 d.Rating.Kp,
			IMDb:               d.Rating.IMDb,
			FilmCritics:        d.Rating.FilmCritics,
			RussianFilmCritics: d.Rating.RussianFilmCritics,
		},
	}
	if d.Poster != nil {
		m.PosterURL = d.Poster.URL
	}

	return m
}

func (d personDoc) toDomain() catalog.Person {
	p := catalog.Person{
		ID:          d.ID,
		Name:        d.Name,
		EnName:      d.EnName,
		Sex:         d.Sex,
		Growth:      d.Growth,
		Birthday:    d.Birthday,
		Death:       d.Death,
		Age:         d.Age,
		PhotoURL:    d.Photo,
		BirthPlaces: values(d.BirthPlace),
		CountAwards: d.CountAwards,
		Facts:       values(d.Facts),
	}
	for _, s := range d.Spouses {
		p.Spouses = append(p.Spouses, catalog.Spouse{
			Relation: s.Relation,
			Divorced: s.Divorced,
			Children: s.Children,
		})
	}
	for _, m := range d.Movies {
		p.Movies = append(p.Movies, catalog.Credit{Name: m.Name, Rating: m.Rating})
	}

	return p
}

func names(vs []namedValue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

func values(vs []namedValue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Value)
	}
	return out
}
