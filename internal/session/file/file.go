// file — файловая реализация session.Store.
//
// Сессия лежит в одном JSON-файле с тремя плоскими строковыми ключами
// (token/role/user_id) — ровно то, что браузерный клиент держал
// в localStorage. Запись атомарна: временный файл + rename, чтобы
// упавший процесс не оставил полузаписанную сессию.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Moayad7/syriacar/internal/models"
	"github.com/Moayad7/syriacar/internal/session"
)

// Store хранит сессию в файле по заданному пути.
type Store struct {
	path string
}

// New создаёт файловое хранилище. Каталог создаётся при первой записи.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("session/file: empty path")
	}

	return &Store{path: path}, nil
}

type payload struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

// Write сохраняет сессию, перезаписывая прежнюю.
func (s *Store) Write(sess models.Session) error {
	const op = "session/file/Write"

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w: %w", op, session.ErrUnavailable, err)
	}

	raw, err := json.Marshal(payload{
		Token:  sess.Token,
		Role:   string(sess.Role),
		UserID: sess.UserID,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%s: %w: %w", op, session.ErrUnavailable, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w: %w", op, session.ErrUnavailable, err)
	}

	return nil
}

// Read возвращает сохранённую сессию; без токена — гостевую.
// Отсутствующий или повреждённый файл тоже трактуется как гостевая
// сессия: восстанавливать тут нечего, пользователь просто разлогинен.
func (s *Store) Read() (models.Session, error) {
	const op = "session/file/Read"

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Guest(), nil
		}

		return models.Guest(), fmt.Errorf("%s: %w: %w", op, session.ErrUnavailable, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Guest(), nil
	}

	if p.Token == "" {
		return models.Guest(), nil
	}

	return models.Session{
		Token:  p.Token,
		Role:   models.Role(p.Role),
		UserID: p.UserID,
	}, nil
}

// Clear удаляет файл сессии. Повторный вызов — no-op.
func (s *Store) Clear() error {
	const op = "session/file/Clear"

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w: %w", op, session.ErrUnavailable, err)
	}

	return nil
}
