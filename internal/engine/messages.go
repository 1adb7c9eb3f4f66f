package engine

import (
	"fmt"

	"github.com/cinegram/cinegram/internal/favorites"
)

const (
	msgWelcome = "🎬 <b>Cinegram</b> — твой персональный гид по миру кино!\n\n" +
		"🔍 <b>Возможности:</b>\n\n" +
		"• Поиск фильмов прямо с Кинопоиска 🎞️\n" +
		"• Добавление любимых фильмов в избранное ⭐\n" +
		"• Поиск актеров и режиссеров по имени 👤\n" +
		"• Просмотр детальной информации об актерах: дата рождения, биография, фильмография 📚\n" +
		"• Фильмы, в которых участвовал выбранный актер 🎥\n\n" +
		"Найдите новые фильмы, узнайте больше о любимых актерах и создавайте свое персональное киноизбранное — все в одном месте!"

	msgHelp = "Выберите действие в меню: поиск фильма, поиск актёра или просмотр избранного.\n" +
		"В избранное помещается не более 10 фильмов; удалить их можно по номерам из списка."

	msgAskMovieQuery  = "Введите название фильма для поиска:"
	msgAskPersonQuery = "Введите имя для поиска:"
	msgAskMovieLimit  = "Сколько фильмов искать?"
	msgAskPersonLimit = "Сколько вариантов искать?"
	msgSearching      = "Начинаю поиск, подождите!"
	msgSearchFailed   = "Поиск не удался, попробуйте позже."
	msgInvalidQuery   = "Запрос может содержать только буквы, цифры, дефис и пробел. Попробуйте ещё раз:"

	msgMoviesSent  = "Все фильмы отправлены. Выберите действие:"
	msgPersonsSent = "Все актеры отправлены. Выберите действие:"

	msgCapacityReached = "Вы не можете добавить больше 10 фильмов в избранное."
	msgMovieNotInSet   = "Ошибка: не удалось найти фильм."
	msgUserNotFound    = "Ошибка: пользователь не найден."
	msgStorageFailed   = "Не получилось обратиться к избранному, попробуйте позже."

	msgFavoritesEmpty = "Ваше избранное пусто!"
	msgAskNumbers     = "Введите номер фильма или несколько номеров через запятую, " +
		"которые вы хотите удалить из избранного:"
	msgInvalidNumbers  = "Пожалуйста, введите корректные номера через запятую."
	msgNothingDeleted  = "Выбранные фильмы уже отсутствуют в избранном."
	msgFavoritesClear  = "Ваши избранные фильмы успешно очищены."
	msgDeletionStopped = "Удаление отменено."

	msgPersonDetailFailed = "Не удалось получить информацию о человеке."
	msgNoFilmography      = "Не удалось найти фильмы для актёра."
)

func greeting(u favorites.User) string {
	if u.FirstName == "" && u.LastName == "" {
		return "Привет! Добрый человек!"
	}
	return fmt.Sprintf("Привет! <b>%s</b> <b>%s</b>", u.FirstName, u.LastName)
}

func msgNotFound(kind string, query string) string {
	return fmt.Sprintf("Не удалось найти информацию о %s\n\"<i><b>%s</b></i>\".", kind, query)
}

func msgAdded(title string) string {
	return fmt.Sprintf("Фильм \"%s\" добавлен в избранное!", title)
}

func msgAlreadyFavorite(title string) string {
	return fmt.Sprintf("Фильм \"%s\" уже находится в избранном.", title)
}

func msgDeleted(titles []string) string {
	out := ""
	for i, t := range titles {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return fmt.Sprintf("Фильмы \"%s\" успешно удалены из избранного.", out)
}

func msgPositionsMissing(positions []int) string {
	out := ""
	for i, p := range positions {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", p)
	}
	return fmt.Sprintf("Фильмы с номерами %s не найдены.", out)
}

func msgFilmographyHeader(name string) string {
	return fmt.Sprintf("Найденные фильмы для: %s:", name)
}
