package telegram

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/cinegram/cinegram/internal/transport"
)

// Callback uniques. The inbound handler switches on these to map taps back
// into engine selections, so the two sides must stay in sync.
const (
	cbSearchMovies  = "search_movies"
	cbSearchPersons = "search_persons"
	cbFavorites     = "favorites"
	cbHelp          = "help"
	cbMenu          = "menu"
	cbLimit         = "limit"
	cbAddFavorite   = "fav_add"
	cbDetail        = "detail"
	cbFilmography   = "films"
	cbDelete        = "fav_del"
	cbClear         = "fav_clear"
	cbCancel        = "cancel"
)

// markup translates engine affordances into an inline keyboard. A zero
// Affordances yields nil so telebot sends the message without a keyboard.
func markup(a transport.Affordances) *tele.ReplyMarkup {
	if a.IsZero() {
		return nil
	}

	m := &tele.ReplyMarkup{}
	var rows []tele.Row

	if a.MainMenu {
		rows = append(rows,
			m.Row(m.Data("🔍 Поиск фильмов", cbSearchMovies)),
			m.Row(m.Data("🔍 Поиск персон", cbSearchPersons)),
			m.Row(m.Data("⭐ Избранное", cbFavorites)),
			m.Row(m.Data("❓ Помощь", cbHelp)),
		)
	}

	if len(a.LimitChoices) > 0 {
		var row tele.Row
		for _, n := range a.LimitChoices {
			s := strconv.Itoa(n)
			row = append(row, m.Data(s, cbLimit, s))
		}
		rows = append(rows, row)
	}

	if a.AddToFavorites != 0 {
		rows = append(rows, m.Row(
			m.Data("⭐ В избранное", cbAddFavorite, strconv.FormatInt(a.AddToFavorites, 10)),
		))
	}
	if a.DetailView != 0 {
		rows = append(rows, m.Row(
			m.Data("📋 Подробнее", cbDetail, strconv.FormatInt(a.DetailView, 10)),
		))
	}
	if a.ShowFilmography {
		rows = append(rows, m.Row(m.Data("🎬 Фильмография", cbFilmography)))
	}
	if a.DeleteFavorites {
		rows = append(rows, m.Row(m.Data("🗑 Удалить из избранного", cbDelete)))
	}
	if a.ConfirmClear {
		rows = append(rows,
			m.Row(m.Data("🗑 Очистить всё", cbClear)),
			m.Row(m.Data("↩️ Отмена", cbCancel)),
		)
	}
	if a.BackToMenu {
		rows = append(rows, m.Row(m.Data("🏠 В меню", cbMenu)))
	}

	m.Inline(rows...)

	return m
}
