// Package models содержит структуры данных приложения: общий документ
// состояния (роспись участников, журнал оплат, чат и настройки ротации).
package models

import "time"

// Режимы ротации для выбора следующего плательщика.
const (
	RotationSequential = "sequential"
	RotationRandom     = "random"
)

// Лимиты, проверяемые бизнес-логикой при мутациях.
const (
	MaxNameLength    = 50
	MaxMessageLength = 500
	MaxChatMessages  = 100
)

// ChatMessage одно сообщение группового чата.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Settings настройки ротации. CurrentIndex имеет смысл только
// в режиме sequential и всегда лежит в границах [0, len(People)).
type Settings struct {
	RotationMode string `json:"rotationMode"`
	CurrentIndex int    `json:"currentIndex"`
}

// StateRecord единый персистентный документ приложения.
// Каждая мутация читает документ целиком, изменяет его и сохраняет обратно.
type StateRecord struct {
	People    []string          `json:"people"`
	PaidDates map[string]string `json:"paidDates"`
	Chat      []ChatMessage     `json:"chat"`
	Settings  *Settings         `json:"settings"`
}

// PublicSnapshot срез документа без настроек, отдаваемый без авторизации.
type PublicSnapshot struct {
	People    []string          `json:"people"`
	PaidDates map[string]string `json:"paidDates"`
	Chat      []ChatMessage     `json:"chat"`
}

// Default возвращает документ начального состояния, создаваемый
// при первом чтении, когда хранилище пусто.
func Default() *StateRecord {
	return &StateRecord{
		People:    []string{"Matheus", "Ana Beatriz", "Maria Carolina", "Lais Dias"},
		PaidDates: map[string]string{},
		Chat:      []ChatMessage{},
		Settings: &Settings{
			RotationMode: RotationSequential,
			CurrentIndex: 0,
		},
	}
}

// Normalize приводит документ к валидной форме сразу после загрузки:
// заполняет отсутствующие поля и возвращает индекс ротации в границы.
// Возвращает true, если документ был изменён и его стоит пересохранить.
func (r *StateRecord) Normalize() bool {
	changed := false
	if r.PaidDates == nil {
		r.PaidDates = map[string]string{}
		changed = true
	}
	if r.Chat == nil {
		r.Chat = []ChatMessage{}
		changed = true
	}
	if r.Settings == nil {
		r.Settings = &Settings{RotationMode: RotationSequential, CurrentIndex: 0}
		changed = true
	}
	if r.Settings.RotationMode != RotationSequential && r.Settings.RotationMode != RotationRandom {
		r.Settings.RotationMode = RotationSequential
		changed = true
	}
	if r.Settings.CurrentIndex < 0 || r.Settings.CurrentIndex >= len(r.People) {
		if r.Settings.CurrentIndex != 0 {
			r.Settings.CurrentIndex = 0
			changed = true
		}
	}
	return changed
}

// Snapshot возвращает публичный срез документа.
func (r *StateRecord) Snapshot() *PublicSnapshot {
	return &PublicSnapshot{
		People:    r.People,
		PaidDates: r.PaidDates,
		Chat:      r.Chat,
	}
}

// HasPerson проверяет точное (с учётом регистра) вхождение имени в роспись.
func (r *StateRecord) HasPerson(name string) bool {
	for _, p := range r.People {
		if p == name {
			return true
		}
	}
	return false
}
