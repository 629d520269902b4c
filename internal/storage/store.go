// Package storage определяет контракт хранилища документа состояния.
//
// Документ всегда читается и сохраняется целиком; частичных обновлений нет.
// Реализации: локальный JSON-файл (filestore) и одна jsonb-строка в
// PostgreSQL (postgres).
package storage

import (
	"context"

	"github.com/vlourenco/rodizio/internal/models"
)

// Store контракт хранилища состояния.
type Store interface {
	// Load возвращает документ состояния. Если хранилище пусто,
	// создаёт, сохраняет и возвращает документ по умолчанию.
	Load(ctx context.Context) (*models.StateRecord, error)

	// Save сохраняет документ целиком, перезаписывая предыдущий.
	Save(ctx context.Context, rec *models.StateRecord) error

	// Backup делает снимок текущего документа в отдельное место
	// и возвращает его идентификатор (имя файла или ключ строки).
	Backup(ctx context.Context) (string, error)
}
