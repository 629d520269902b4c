// Package postgres реализует хранилище состояния в PostgreSQL.
//
// Весь документ лежит одной jsonb-строкой в таблице app_state (id = 1),
// снимки перед сбросом истории складываются в app_state_backup.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vlourenco/rodizio/internal/models"
)

// stateID единственная строка документа состояния.
const stateID = 1

// Store инкапсулирует соединение с PostgreSQL.
type Store struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL, проверяет его и накатывает миграции.
func New(connectionString, migrationsPath string) (*Store, error) {
	const op = "postgres.New"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = runMigrations(db, migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{DB: db}, nil
}

func runMigrations(db *sql.DB, path string) error {
	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "pgx_v5", driver)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Load возвращает документ состояния из единственной строки app_state.
// Если строки нет, вставляет и возвращает документ по умолчанию.
func (s *Store) Load(ctx context.Context) (*models.StateRecord, error) {
	const op = "postgres.Load"

	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM app_state WHERE id = $1`, stateID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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

// Save перезаписывает документ состояния целиком.
func (s *Store) Save(ctx context.Context, rec *models.StateRecord) error {
	const op = "postgres.Save"

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO app_state (id, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		stateID, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Backup копирует текущий документ в app_state_backup и возвращает
// идентификатор снимка.
func (s *Store) Backup(ctx context.Context) (string, error) {
	const op = "postgres.Backup"

	var id int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO app_state_backup (data)
		 SELECT data FROM app_state WHERE id = $1
		 RETURNING id`, stateID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("app_state_backup:%d", id), nil
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	return s.DB.Close()
}
