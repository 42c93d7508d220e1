// files.go — сервис файлов: создание записей, чтение и листинг
// в пределах владельца. Координирует repository, blobstore и кэш папок.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofiman/internal/config"
	"github.com/bigkaa/gofiman/internal/domain/model"
	"github.com/bigkaa/gofiman/internal/repository"
)

// Prometheus-метрики файлового сервиса.
var (
	filesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fm_files_created_total",
		Help: "Общее количество созданных записей по типам.",
	}, []string{"type"})
	blobBytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_blob_bytes_written_total",
		Help: "Общий объём содержимого, записанного на диск, в байтах.",
	})
)

// BlobWriter — запись содержимого файла на диск.
// Реализуется blobstore.BlobStore.
type BlobWriter interface {
	// Write записывает данные в новый blob и возвращает его путь.
	Write(data []byte) (string, error)
}

// CreateParams — параметры создания записи файла или папки.
type CreateParams struct {
	// UserID — UUID аутентифицированного владельца
	UserID string
	// Name — имя файла или папки
	Name string
	// Type — тип записи (folder, file, image)
	Type string
	// ParentID — родительская папка: "" или "0" = корень, иначе UUID
	ParentID string
	// IsPublic — флаг публичности
	IsPublic bool
	// Data — содержимое в base64 (обязательно для type != folder)
	Data string
}

// FileService — сервис управления записями файлов и папок.
type FileService struct {
	files  repository.FileRepository
	blobs  BlobWriter
	cache  *FolderCache
	logger *slog.Logger
}

// NewFileService создаёт файловый сервис.
func NewFileService(
	files repository.FileRepository,
	blobs BlobWriter,
	cache *FolderCache,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		files:  files,
		blobs:  blobs,
		cache:  cache,
		logger: logger.With(slog.String("component", "file_service")),
	}
}

// Create валидирует параметры и создаёт запись файла или папки.
// Цепочка проверок упорядочена: имя → тип → содержимое → родитель;
// первая неуспешная проверка завершает операцию без побочных эффектов.
// Для file/image содержимое пишется на диск до вставки метаданных;
// компенсации при ошибке вставки нет (blob остаётся на диске).
func (s *FileService) Create(ctx context.Context, p CreateParams) (*model.FileRecord, error) {
	if p.Name == "" {
		return nil, ErrMissingName
	}

	fileType := model.FileType(p.Type)
	if !fileType.Valid() {
		return nil, ErrMissingType
	}

	if !fileType.IsFolder() && p.Data == "" {
		return nil, ErrMissingData
	}

	parentID, err := s.resolveParent(ctx, p.ParentID)
	if err != nil {
		return nil, err
	}

	record := &model.FileRecord{
		UserID:   p.UserID,
		Name:     p.Name,
		Type:     fileType,
		IsPublic: p.IsPublic,
		ParentID: parentID,
	}

	if !fileType.IsFolder() {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, ErrMissingData
		}

		localPath, err := s.blobs.Write(data)
		if err != nil {
			return nil, fmt.Errorf("запись содержимого: %w", err)
		}
		record.LocalPath = &localPath
		blobBytesWrittenTotal.Add(float64(len(data)))
	}

	if err := s.files.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("вставка записи: %w", err)
	}

	filesCreatedTotal.WithLabelValues(string(fileType)).Inc()

	s.logger.Debug("Запись создана",
		slog.String("file_id", record.ID),
		slog.String("type", string(fileType)),
		slog.String("user_id", p.UserID),
	)

	return record, nil
}

// GetByID возвращает запись по UUID в пределах владельца.
// Синтаксически некорректный UUID и чужая запись неразличимы —
// обе дают ErrNotFound, чтобы не раскрывать существование чужих файлов.
func (s *FileService) GetByID(ctx context.Context, fileID, userID string) (*model.FileRecord, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, ErrNotFound
	}

	record, err := s.files.GetByIDForUser(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}
	return record, nil
}

// List возвращает страницу записей владельца с указанным родителем.
// parentID: "" или "0" — корень; непарсящийся UUID даёт пустой результат
// без ошибки. Это осознанная асимметрия с Create (строгая валидация) —
// поведение зафиксировано контрактом и тестами, не унифицировать.
// page < 0 нормализуется к 0.
func (s *FileService) List(ctx context.Context, userID, parentID string, page int) ([]*model.FileRecord, error) {
	if page < 0 {
		page = 0
	}

	var parent *string
	if parentID != "" && parentID != "0" {
		if _, err := uuid.Parse(parentID); err != nil {
			return []*model.FileRecord{}, nil
		}
		parent = &parentID
	}

	records, err := s.files.ListByParent(ctx, userID, parent, config.PageSize, page*config.PageSize)
	if err != nil {
		return nil, fmt.Errorf("листинг записей: %w", err)
	}
	if records == nil {
		records = []*model.FileRecord{}
	}
	return records, nil
}

// resolveParent разрешает parentId в ссылку на родительскую папку.
// "" и "0" — корневой сентинел (nil). Непарсящийся UUID эквивалентен
// несуществующему — оба дают ErrParentNotFound, без отката к корню.
// Папка ищется сначала в LRU-кэше; безопасно, т.к. записи неизменяемы.
func (s *FileService) resolveParent(ctx context.Context, parentID string) (*string, error) {
	if parentID == "" || parentID == "0" {
		return nil, nil
	}

	if _, err := uuid.Parse(parentID); err != nil {
		return nil, ErrParentNotFound
	}

	if parent, ok := s.cache.Get(parentID); ok {
		return &parent.ID, nil
	}

	parent, err := s.files.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("поиск родительской папки: %w", err)
	}
	if !parent.Type.IsFolder() {
		return nil, ErrParentNotFolder
	}

	s.cache.Set(parent.ID, parent)
	return &parent.ID, nil
}
