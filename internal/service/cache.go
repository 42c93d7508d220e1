// Пакет service — бизнес-логика Files Manager.
// FolderCache — LRU-кэш записей папок с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
// Кэшируются только папки: записи неизменяемы и никогда не удаляются,
// поэтому устаревание кэша не нарушает корректность проверки родителя.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofiman/internal/domain/model"
)

// Prometheus-метрики кэша папок.
var (
	folderCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_folder_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш папок.",
	})
	folderCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_folder_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша папок.",
	})
)

// FolderCache — LRU-кэш записей папок с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный in-memory кэш.
type FolderCache struct {
	cache *expirable.LRU[string, *model.FileRecord]
}

// NewFolderCache создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewFolderCache(maxSize int, ttl time.Duration) *FolderCache {
	cache := expirable.NewLRU[string, *model.FileRecord](maxSize, nil, ttl)
	return &FolderCache{cache: cache}
}

// Get возвращает запись папки из кэша по UUID.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *FolderCache) Get(folderID string) (*model.FileRecord, bool) {
	val, ok := c.cache.Get(folderID)
	if ok {
		folderCacheHitsTotal.Inc()
		return val, true
	}
	folderCacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет запись папки в кэш. Не-папки игнорируются:
// кэш используется только проверкой родителя.
func (c *FolderCache) Set(folderID string, record *model.FileRecord) {
	if !record.Type.IsFolder() {
		return
	}
	c.cache.Add(folderID, record)
}
