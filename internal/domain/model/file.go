// Пакет model — доменные модели Files Manager.
// FileRecord — маппинг таблицы files (единственная сущность сервиса).
package model

import (
	"encoding/json"
	"time"
)

// FileType — тип записи в реестре файлов.
type FileType string

// Допустимые типы записей.
const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// Valid проверяет, является ли тип одним из допустимых.
func (t FileType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// IsFolder сообщает, является ли запись папкой.
func (t FileType) IsFolder() bool {
	return t == TypeFolder
}

// FileRecord — запись файла или папки в таблице files.
// Запись создаётся при загрузке и далее неизменяема:
// операций переименования, перемещения и удаления нет.
type FileRecord struct {
	// ID — UUID записи (назначается БД при вставке)
	ID string
	// UserID — UUID владельца; все чтения фильтруются по нему
	UserID string
	// Name — имя файла или папки
	Name string
	// Type — тип записи (folder, file, image)
	Type FileType
	// IsPublic — флаг публичности (хранится, но читающими
	// операциями не используется — см. DESIGN.md)
	IsPublic bool
	// ParentID — UUID родительской папки, nil = корень
	ParentID *string
	// LocalPath — путь к содержимому на диске; заполнен
	// только для type != folder, наружу не отдаётся
	LocalPath *string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// View возвращает каноническое внешнее представление записи.
// LocalPath в представление не входит.
func (f *FileRecord) View() FileView {
	return FileView{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: ParentRef{ID: f.ParentID},
	}
}

// FileView — каноническое JSON-представление FileRecord.
type FileView struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Type     FileType  `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID ParentRef `json:"parentId"`
}

// ParentRef — ссылка на родительскую папку в JSON-представлении.
// Корень сериализуется как число 0, остальные значения — как строка UUID.
type ParentRef struct {
	// ID — UUID родителя, nil = корневой сентинел
	ID *string
}

// IsRoot сообщает, указывает ли ссылка на корень.
func (p ParentRef) IsRoot() bool {
	return p.ID == nil
}

// MarshalJSON сериализует корень как 0, иначе — строку UUID.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.ID == nil {
		return []byte("0"), nil
	}
	return json.Marshal(*p.ID)
}

// UnmarshalJSON принимает число 0, строку "0" или строку UUID.
// Синтаксическая валидация UUID выполняется сервисным слоем,
// поэтому произвольная строка здесь не является ошибкой.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "0" || s == `"0"` || s == "null" {
		p.ID = nil
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		// Не строка (например, число) — сохраняем сырое значение,
		// синтаксическую валидацию выполнит сервисный слой.
		id = s
	}
	p.ID = &id
	return nil
}
