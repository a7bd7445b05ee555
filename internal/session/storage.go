package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage key-value хранилище на файлах: одна запись - один файл в каталоге.
// Аналог AsyncStorage мобильного клиента.
type FileStorage struct {
	dir string
}

// NewFileStorage создает файловое хранилище в указанном каталоге
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: failed to create storage dir %s: %v", ErrInternal, dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// Get возвращает значение по ключу; второй результат false, если ключа нет
func (s *FileStorage) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: failed to read key %s: %v", ErrInternal, key, err)
	}
	return string(data), true, nil
}

// Set записывает значение атомарно: сначала во временный файл, затем rename.
// Обрыв процесса между записью и rename оставляет прежнее значение целым.
func (s *FileStorage) Set(key, value string) error {
	target := s.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("%w: failed to write key %s: %v", ErrInternal, key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w: failed to commit key %s: %v", ErrInternal, key, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа не является ошибкой
func (s *FileStorage) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to delete key %s: %v", ErrInternal, key, err)
	}
	return nil
}

// path возвращает путь файла для ключа
func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key)
}
