// Package services содержит бизнес-логику над документом состояния:
// журнал оплат, роспись участников, чат и настройки ротации.
//
// Каждая операция выполняет полный цикл чтение - изменение - сохранение
// под общим мьютексом, что сериализует конкурирующие мутации и исключает
// потерю обновлений при одновременных запросах.
package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vlourenco/rodizio/internal/events"
	"github.com/vlourenco/rodizio/internal/lib/sl"
	"github.com/vlourenco/rodizio/internal/models"
	"github.com/vlourenco/rodizio/internal/rotation"
)

// Ошибки валидации и поиска, различаемые HTTP-обработчиками.
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrPersonExists    = errors.New("person already exists")
	ErrPersonNotFound  = errors.New("person not found")
	ErrBadDate         = errors.New("invalid date format")
	ErrEmptyMessage    = errors.New("user name and text are required")
	ErrMessageTooLong  = errors.New("message is too long")
	ErrBadRotationMode = errors.New("invalid rotation mode")
)

const (
	dateLayout       = "2006-01-02"
	snapshotCacheKey = "state:snapshot"
	snapshotCacheTTL = time.Minute
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Store определяет методы хранилища документа состояния.
type Store interface {
	// Load возвращает документ, создавая документ по умолчанию при отсутствии.
	Load(ctx context.Context) (*models.StateRecord, error)
	// Save перезаписывает документ целиком.
	Save(ctx context.Context, rec *models.StateRecord) error
	// Backup делает снимок документа и возвращает его идентификатор.
	Backup(ctx context.Context) (string, error)
}

// Cache описывает методы для кэширования публичного среза.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(event events.Event) error
}

// StateService реализует операции над документом состояния.
type StateService struct {
	mu     sync.Mutex
	store  Store
	cache  Cache
	events Publisher
	log    *slog.Logger
}

// NewStateService создает новый экземпляр StateService.
// Publisher может быть nil, тогда события не публикуются.
func NewStateService(store Store, cache Cache, pub Publisher, log *slog.Logger) *StateService {
	return &StateService{
		store:  store,
		cache:  cache,
		events: pub,
		log:    log,
	}
}

// PublicSnapshot возвращает публичный срез документа, используя кеш.
func (s *StateService) PublicSnapshot(ctx context.Context) (*models.PublicSnapshot, error) {
	var snap models.PublicSnapshot
	found, err := s.cache.Get(ctx, snapshotCacheKey, &snap)
	if err != nil {
		s.log.Warn("failed to read snapshot from cache", sl.Err(err))
	}
	if found {
		return &snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := rec.Snapshot()
	if err := s.cache.Set(ctx, snapshotCacheKey, result, snapshotCacheTTL); err != nil {
		s.log.Warn("failed to cache snapshot", sl.Err(err))
	}
	return result, nil
}

// FullRecord возвращает документ целиком, включая настройки.
func (s *StateService) FullRecord(ctx context.Context) (*models.StateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// NextPerson возвращает имя следующего плательщика согласно настройкам
// ротации. Для пустой росписи ok == false.
func (s *StateService) NextPerson(ctx context.Context) (name string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.store.Load(ctx)
	if err != nil {
		return "", false, err
	}
	name, ok = rotation.NextPerson(rec.People, rec.Settings)
	return name, ok, nil
}

// ToggleToday переключает запись об оплате за сегодняшний день.
//
// Переключение привязано к дате, а не к имени: если за сегодня уже есть
// запись, она удаляется независимо от того, чьё имя в ней стоит. Иначе
// оплата регистрируется на указанное имя и индекс ротации сдвигается.
func (s *StateService) ToggleToday(ctx context.Context, name string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" || !rec.HasPerson(name) {
		return nil, ErrInvalidName
	}

	today := time.Now().Format(dateLayout)
	if _, exists := rec.PaidDates[today]; exists {
		delete(rec.PaidDates, today)
		if err := s.persist(ctx, rec); err != nil {
			return nil, err
		}
		s.emit(events.Event{Type: events.PaymentRemoved, Date: today, OccurredAt: time.Now()})
		return rec.PaidDates, nil
	}

	rec.PaidDates[today] = name
	rotation.Advance(rec)
	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(events.Event{Type: events.PaymentRegistered, Person: name, Date: today, OccurredAt: time.Now()})
	return rec.PaidDates, nil
}

// PostMessage добавляет сообщение в чат, удерживая не более
// models.MaxChatMessages последних сообщений.
func (s *StateService) PostMessage(ctx context.Context, userName, text string) ([]models.ChatMessage, error) {
	userName = strings.TrimSpace(userName)
	text = strings.TrimSpace(text)
	if userName == "" || text == "" {
		return nil, ErrEmptyMessage
	}
	// Лимит считается в символах, а не в байтах.
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec.Chat = append(rec.Chat, models.ChatMessage{
		ID:        uuid.NewString(),
		UserName:  userName,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if len(rec.Chat) > models.MaxChatMessages {
		rec.Chat = rec.Chat[len(rec.Chat)-models.MaxChatMessages:]
	}
	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	return rec.Chat, nil
}

// AddPerson добавляет участника в конец росписи.
// Порядок вставки определяет очерёдность последовательной ротации.
func (s *StateService) AddPerson(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		return nil, ErrNameTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	// Совпадение имён проверяется точно, с учётом регистра.
	if rec.HasPerson(name) {
		return nil, ErrPersonExists
	}
	rec.People = append(rec.People, name)
	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(events.Event{Type: events.PersonAdded, Person: name, OccurredAt: time.Now()})
	return rec.People, nil
}

// RemovePerson удаляет участника, каскадно вычищает его записи из журнала
// оплат и возвращает индекс ротации в границы новой росписи.
func (s *StateService) RemovePerson(ctx context.Context, name string) (*models.StateRecord, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !rec.HasPerson(name) {
		return nil, ErrPersonNotFound
	}

	people := make([]string, 0, len(rec.People)-1)
	for _, p := range rec.People {
		if p != name {
			people = append(people, p)
		}
	}
	rec.People = people

	paidDates := make(map[string]string, len(rec.PaidDates))
	for date, payer := range rec.PaidDates {
		if payer != name {
			paidDates[date] = payer
		}
	}
	rec.PaidDates = paidDates

	if rec.Settings.CurrentIndex >= len(rec.People) {
		rec.Settings.CurrentIndex = 0
	}

	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(events.Event{Type: events.PersonRemoved, Person: name, OccurredAt: time.Now()})
	return rec, nil
}

// SetPaid выставляет или снимает запись об оплате за произвольную дату.
// Пустое имя означает снятие записи; отсутствие записи при снятии не ошибка.
// В отличие от ToggleToday существующая запись просто перезаписывается.
func (s *StateService) SetPaid(ctx context.Context, date, name string) (map[string]string, error) {
	if !dateRe.MatchString(date) {
		return nil, ErrBadDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if !rec.HasPerson(name) {
			return nil, ErrInvalidName
		}
		rec.PaidDates[date] = name
	} else {
		delete(rec.PaidDates, date)
	}

	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	if name != "" {
		s.emit(events.Event{Type: events.PaymentRegistered, Person: name, Date: date, OccurredAt: time.Now()})
	} else {
		s.emit(events.Event{Type: events.PaymentRemoved, Date: date, OccurredAt: time.Now()})
	}
	return rec.PaidDates, nil
}

// ResetHistory очищает журнал оплат и обнуляет индекс ротации,
// не трогая режим ротации. Перед сбросом делается снимок состояния;
// неудача снимка сброс не блокирует.
func (s *StateService) ResetHistory(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	backupID, err := s.store.Backup(ctx)
	if err != nil {
		s.log.Warn("failed to create backup before reset", sl.Err(err))
		backupID = ""
	}

	rec.PaidDates = map[string]string{}
	rec.Settings.CurrentIndex = 0

	if err := s.persist(ctx, rec); err != nil {
		return "", err
	}
	s.emit(events.Event{Type: events.HistoryReset, OccurredAt: time.Now()})
	return backupID, nil
}

// SetRotationMode переключает режим ротации.
func (s *StateService) SetRotationMode(ctx context.Context, mode string) (*models.Settings, error) {
	if mode != models.RotationSequential && mode != models.RotationRandom {
		return nil, ErrBadRotationMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec.Settings.RotationMode = mode
	if mode == models.RotationSequential &&
		(rec.Settings.CurrentIndex < 0 || rec.Settings.CurrentIndex >= len(rec.People)) {
		rec.Settings.CurrentIndex = 0
	}

	if err := s.persist(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(events.Event{Type: events.SettingsChanged, OccurredAt: time.Now()})
	return rec.Settings, nil
}

// persist сохраняет документ и инвалидирует кеш публичного среза.
func (s *StateService) persist(ctx context.Context, rec *models.StateRecord) error {
	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, snapshotCacheKey); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", sl.Err(err))
	}
	return nil
}

// emit публикует событие best-effort.
func (s *StateService) emit(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", event.Type), sl.Err(err))
	}
}
