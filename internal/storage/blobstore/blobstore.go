// Пакет blobstore — запись содержимого файлов на локальный диск.
// Каждый blob получает уникальное UUID-имя в директории содержимого,
// поэтому конкурентные записи не конфликтуют. Запись blob'а и вставка
// метаданных — два независимых шага без компенсации: при ошибке вставки
// blob остаётся на диске (осознанное ограничение, см. DESIGN.md).
package blobstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore — запись содержимого файлов в директорию на диске.
type BlobStore struct {
	// folderPath — директория хранения содержимого (FM_FOLDER_PATH)
	folderPath string
}

// New создаёт BlobStore. Создаёт директорию содержимого,
// если она не существует.
func New(folderPath string) (*BlobStore, error) {
	if err := os.MkdirAll(folderPath, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию содержимого %s: %w", folderPath, err)
	}

	return &BlobStore{folderPath: folderPath}, nil
}

// Write записывает данные в новый blob с UUID-именем.
// Возвращает абсолютный путь записанного файла.
func (b *BlobStore) Write(data []byte) (string, error) {
	localPath := filepath.Join(b.folderPath, uuid.NewString())

	if err := os.WriteFile(localPath, data, 0o640); err != nil {
		return "", fmt.Errorf("ошибка записи blob: %w", err)
	}

	return localPath, nil
}

// FolderPath возвращает директорию хранения содержимого.
func (b *BlobStore) FolderPath() string {
	return b.folderPath
}
