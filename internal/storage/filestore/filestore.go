// Package filestore реализует хранилище состояния в локальном JSON-файле.
//
// Запись выполняется через временный файл с переименованием, чтобы
// прерванная запись не оставляла наполовину записанный документ.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vlourenco/rodizio/internal/models"
)

// Store хранит документ состояния в файле по заданному пути.
type Store struct {
	path string
}

// New создаёт файловое хранилище. Каталог файла должен существовать.
func New(path string) *Store {
	return &Store{path: path}
}

// Load читает документ из файла. Если файла нет, сохраняет и возвращает
// документ по умолчанию. Загруженный документ нормализуется, и если
// нормализация что-то исправила, результат сразу пересохраняется.
func (s *Store) Load(ctx context.Context) (*models.StateRecord, error) {
	const op = "filestore.Load"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		rec := models.Default()
		if err := s.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rec models.StateRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rec.Normalize() {
		if err := s.Save(ctx, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &rec, nil
}

// Save сохраняет документ целиком, атомарно подменяя файл.
func (s *Store) Save(ctx context.Context, rec *models.StateRecord) error {
	const op = "filestore.Save"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Backup копирует текущий файл состояния в data_backup_<timestamp>.json
// рядом с ним и возвращает имя копии.
func (s *Store) Backup(ctx context.Context) (string, error) {
	const op = "filestore.Backup"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339Nano))
	backupPath := filepath.Join(filepath.Dir(s.path), fmt.Sprintf("data_backup_%s.json", ts))
	if err := os.WriteFile(backupPath, raw, 0o600); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return filepath.Base(backupPath), nil
}
