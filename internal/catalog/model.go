package catalog

// Kind discriminates between the two search flows.
type Kind int

const (
	KindMovie Kind = iota
	KindPerson
)

func (k Kind) String() string {
	if k == KindPerson {
		return "person"
	}
	return "movie"
}

// Rating holds the four rating sources as delivered by the catalog.
// Values keep the source precision; zero means the source has no score.
type Rating struct {
	Kp                 float64
	IMDb               float64
	FilmCritics        float64
	RussianFilmCritics float64
}

type Movie struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Genres      []string
	Countries   []string
	PosterURL   string
	Rating      Rating
}

// Spouse is one marriage record of a person. Children is nil when the
// catalog does not report a count.
type Spouse struct {
	Relation string
	Divorced bool
	Children *int
}

// Credit is one filmography entry. Rating is nil when the catalog has none.
type Credit struct {
	Name   string
	Rating *float64
}

type Person struct {
	ID          int64
	Name        string
	EnName      string
	Sex         string
	Growth      int
	Birthday    string
	Death       string
	Age         *int
	PhotoURL    string
	BirthPlaces []string
	CountAwards *int
	Spouses     []Spouse
	Facts       []string
	Movies      []Credit
}
