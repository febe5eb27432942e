package tokenslot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File хранит токен в JSON-файле вида {"token": "..."}.
type File struct {
	path string
}

// NewFile создаёт файловый слот по пути path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load читает токен. Отсутствующий файл означает пустой слот.
func (f *File) Load(_ context.Context) (string, error) {
	const op = "tokenslot.File.Load"
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var content map[string]string
	if err := json.Unmarshal(data, &content); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return content[Key], nil
}

// Save записывает токен через временный файл и rename.
func (f *File) Save(_ context.Context, token string) error {
	const op = "tokenslot.File.Save"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data, err := json.Marshal(map[string]string{Key: token})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет файл слота.
func (f *File) Clear(_ context.Context) error {
	const op = "tokenslot.File.Clear"
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
