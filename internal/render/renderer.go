// Package render maps catalog records to display units and splits long text
// blocks into transport-sized segments. Everything here is a pure function.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/transport"
)

const unspecified = "Не указано"

// Unit is one renderable result: a caption, an optional image and the
// actions attached to the message.
type Unit struct {
	Caption     string
	ImageRef    string
	Affordances transport.Affordances
}

// MovieUnit renders one movie search result. Captions longer than the
// attachment limit are truncated at the description field only.
func MovieUnit(m catalog.Movie) Unit {
	caption := fmt.Sprintf(
		"🎬 <i><b>Название:</b></i> %s\n"+
			"📅 <i><b>Год:</b></i> %d\n"+
			"📝 <i><b>Описание:</b></i> %s\n"+
			"🎭 <i><b>Жанры:</b></i> %s\n"+
			"🌍 <i><b>Страна:</b></i> %s\n"+
			"<i><b>Рейтинг:</b></i>\n"+
			"⭐<i><b>Кп:</b></i> %s "+
			"⭐<i><b>imdb:</b></i> %s "+
			"⭐<i><b>FC:</b></i> %s "+
			"⭐<i><b>RFC:</b></i> %s",
		m.Name, m.Year, m.Description,
		strings.Join(m.Genres, ", "), strings.Join(m.Countries, ", "),
		formatRating(m.Rating.Kp), formatRating(m.Rating.IMDb),
		formatRating(m.Rating.FilmCritics), formatRating(m.Rating.RussianFilmCritics),
	)

	return Unit{
		Caption:     truncateAtDescription(caption, m.Description, CaptionLimit),
		ImageRef:    m.PosterURL,
		Affordances: transport.Affordances{AddToFavorites: m.ID},
	}
}

// PersonUnit renders one person search result.
func PersonUnit(p catalog.Person) Unit {
	caption := fmt.Sprintf(
		"<i><b>Имя:</b></i> %s\n"+
			"<i><b>Английское имя:</b></i> %s\n"+
			"<i><b>Пол:</b></i> %s\n"+
			"<i><b>Рост:</b></i> %s см\n"+
			"<i><b>Дата рождения:</b></i> %s\n"+
			"<i><b>Возраст:</b></i> %s",
		orUnspecified(p.Name), orUnspecified(p.EnName), orUnspecified(p.Sex),
		growth(p.Growth), date(p.Birthday), age(p.Age),
	)

	return Unit{
		Caption:     caption,
		ImageRef:    p.PhotoURL,
		Affordances: transport.Affordances{DetailView: p.ID},
	}
}

// PersonDetailUnit renders the full person view: dates, birthplaces, awards,
// spouse summaries and bulleted facts.
func PersonDetailUnit(p catalog.Person) Unit {
	caption := fmt.Sprintf(
		"🎭 <i><b>Имя:</b></i> %s\n"+
			"🌍 <i><b>Английское имя:</b></i> %s\n"+
			"⚤ <i><b>Пол:</b></i> %s\n"+
			"📏 <i><b>Рост:</b></i> %s см\n"+
			"🎂 <i><b>Дата рождения:</b></i> %s\n"+
			"🪦 <i><b>Дата смерти:</b></i> %s\n"+
			"🎉 <i><b>Возраст:</b></i> %s\n"+
			"🗺️ <i><b>Место рождения:</b></i> %s\n"+
			"🏆 <i><b>Количество наград:</b></i> %s\n"+
			"💍 <i><b>Супруги:</b></i> %s\n"+
			"%s",
		orUnspecified(p.Name), orUnspecified(p.EnName), sex(p.Sex),
		growth(p.Growth), date(p.Birthday), date(p.Death), age(p.Age),
		joinOr(p.BirthPlaces, unspecified), awards(p.CountAwards),
		spouses(p.Spouses), facts(p.Facts),
	)

	return Unit{
		Caption:     caption,
		ImageRef:    p.PhotoURL,
		Affordances: transport.Affordances{ShowFilmography: true, BackToMenu: true},
	}
}

// FilmographyLines renders one line per named credit, in catalog order.
func FilmographyLines(credits []catalog.Credit) string {
	var lines []string
	for _, credit := range credits {
		if credit.Name == "" {
			continue
		}
		rating := "Нет данных"
		if credit.Rating != nil {
			rating = formatRating(*credit.Rating)
		}
		lines = append(lines, fmt.Sprintf("<code>%s</code> (⭐%s)", credit.Name, rating))
	}

	return strings.Join(lines, "\n")
}

// FavoritesList renders the numbered favorites view. The numbering is the
// position index later used for deletion, so it must follow snapshot order.
func FavoritesList(entries []favorites.Entry) string {
	var b strings.Builder
	b.WriteString("Ваши избранные фильмы:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. <code>%s</code> - (%d), Жанр: <i>%s</i>, Страна: %s\n",
			i+1, e.Title, e.ReleaseYear, e.Genres, e.Country)
	}

	return b.String()
}

// AgeSuffix returns the grammatical-number suffix for a non-negative age:
// "год" for 1, 21, 101... (but not 11), "года" for 2..4, 22..24... (but not
// 12..14), "лет" otherwise.
func AgeSuffix(age int) string {
	switch {
	case age%10 == 1 && age%100 != 11:
		return "год"
	case age%10 >= 2 && age%10 <= 4 && !(age%100 >= 12 && age%100 <= 14):
		return "года"
	default:
		return "лет"
	}
}

// truncateAtDescription trims only the description substring so the whole
// caption fits into limit characters, ellipsis included.
func truncateAtDescription(caption, description string, limit int) string {
	total := utf8.RuneCountInString(caption)
	if total <= limit || description == "" {
		return caption
	}

	const ellipsis = "..."
	excess := total - limit + len(ellipsis)
	descRunes := []rune(description)
	if excess > len(descRunes) {
		excess = len(descRunes)
	}

	trimmed := strings.TrimRight(string(descRunes[:len(descRunes)-excess]), " ") + ellipsis

	return strings.Replace(caption, description, trimmed, 1)
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func orUnspecified(s string) string {
	if s == "" {
		return unspecified
	}
	return s
}

func growth(cm int) string {
	if cm == 0 {
		return unspecified
	}
	return strconv.Itoa(cm)
}

// date keeps the date part of the catalog's RFC 3339 timestamps.
func date(s string) string {
	if s == "" {
		return unspecified
	}
	if d, _, ok := strings.Cut(s, "T"); ok {
		return d
	}
	return s
}

func age(a *int) string {
	if a == nil {
		return unspecified
	}
	return fmt.Sprintf("%d %s", *a, AgeSuffix(*a))
}

// sex maps the source vocabulary exactly; anything else is unspecified.
func sex(s string) string {
	switch s {
	case "Мужской":
		return "♂️ Мужчина"
	case "Женский":
		return "♀️ Женщина"
	default:
		return unspecified
	}
}

func awards(count *int) string {
	if count == nil {
		return "Нет данных"
	}
	return strconv.Itoa(*count)
}

func spouses(ss []catalog.Spouse) string {
	if len(ss) == 0 {
		return "Нет данных"
	}

	summaries := make([]string, 0, len(ss))
	for _, s := range ss {
		relation := s.Relation
		if relation == "" {
			relation = unspecified
		}
		status := "в браке"
		if s.Divorced {
			status = "в разводе"
		}
		children := "нет"
		if s.Children != nil {
			children = strconv.Itoa(*s.Children)
		}
		summaries = append(summaries, fmt.Sprintf("%s (%s, дети: %s)", relation, status, children))
	}

	return strings.Join(summaries, ", ")
}

func facts(fs []string) string {
	if len(fs) == 0 {
		return "Нет интересных фактов"
	}

	lines := make([]string, 0, len(fs))
	for i, fact := range fs {
		lines = append(lines, fmt.Sprintf("📝 <i><b>Факт %d:</b></i> %s", i+1, fact))
	}

	return strings.Join(lines, "\n")
}

func joinOr(vs []string, fallback string) string {
	if len(vs) == 0 {
		return fallback
	}
	return strings.Join(vs, ", ")
}
