// Package rotation реализует политику выбора следующего плательщика:
// последовательный обход списка по индексу либо равномерный случайный выбор.
package rotation

import (
	"math/rand/v2"

	"github.com/vlourenco/rodizio/internal/models"
)

// NextPerson возвращает имя следующего плательщика.
// Для пустой росписи возвращает ("", false).
func NextPerson(people []string, settings *models.Settings) (string, bool) {
	if len(people) == 0 {
		return "", false
	}
	if settings != nil && settings.RotationMode == models.RotationRandom {
		return people[rand.IntN(len(people))], true
	}
	idx := 0
	if settings != nil {
		idx = settings.CurrentIndex
	}
	return people[idx%len(people)], true
}

// Advance сдвигает индекс ротации после регистрации новой оплаты.
// Работает только в режиме sequential; на пустой росписи ничего не делает.
func Advance(rec *models.StateRecord) {
	if rec.Settings == nil || rec.Settings.RotationMode != models.RotationSequential {
		return
	}
	if len(rec.People) == 0 {
		return
	}
	rec.Settings.CurrentIndex = (rec.Settings.CurrentIndex + 1) % len(rec.People)
}
