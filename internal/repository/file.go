// file.go — репозиторий таблицы files.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/gofiman/internal/domain/model"
)

// fileColumns — список столбцов таблицы files для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const fileColumns = `id, user_id, name, type, is_public, parent_id, local_path, created_at`

// FileRepository — интерфейс доступа к записям файлов и папок.
// Записи только вставляются и читаются: update/delete операций
// у сервиса нет (см. жизненный цикл FileRecord).
type FileRepository interface {
	// Insert вставляет запись; id и created_at заполняются БД.
	Insert(ctx context.Context, f *model.FileRecord) error
	// GetByID возвращает запись по UUID без фильтра по владельцу.
	// Используется при проверке родительской папки.
	GetByID(ctx context.Context, fileID string) (*model.FileRecord, error)
	// GetByIDForUser возвращает запись по UUID, принадлежащую userID.
	// Чужая запись неотличима от несуществующей — обе дают ErrNotFound.
	GetByIDForUser(ctx context.Context, fileID, userID string) (*model.FileRecord, error)
	// ListByParent возвращает страницу записей владельца userID
	// с указанным родителем (nil = корень) в натуральном порядке БД.
	ListByParent(ctx context.Context, userID string, parentID *string, limit, offset int) ([]*model.FileRecord, error)
	// Count возвращает общее количество записей в files.
	Count(ctx context.Context) (int, error)
}

// fileRepo — реализация FileRepository через pgx.
type fileRepo struct {
	db DBTX
}

// NewFileRepository создаёт репозиторий файлов.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db}
}

// Insert вставляет запись в files. UUID и created_at назначает БД.
func (r *fileRepo) Insert(ctx context.Context, f *model.FileRecord) error {
	query := `
		INSERT INTO files (user_id, name, type, is_public, parent_id, local_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		f.UserID, f.Name, string(f.Type), f.IsPublic, f.ParentID, f.LocalPath,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка вставки записи файла: %w", err)
	}
	return nil
}

// GetByID возвращает запись по UUID или ErrNotFound.
func (r *fileRepo) GetByID(ctx context.Context, fileID string) (*model.FileRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1`, fileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, fileID))
}

// GetByIDForUser возвращает запись по UUID с фильтром по владельцу.
// Фильтр включает и id, и user_id — чужие записи дают ErrNotFound.
func (r *fileRepo) GetByIDForUser(ctx context.Context, fileID, userID string) (*model.FileRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1 AND user_id = $2`, fileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, fileID, userID))
}

// ListByParent возвращает страницу записей владельца с указанным родителем.
// parentID == nil означает корневые записи (parent_id IS NULL).
// Явной сортировки нет — порядок натуральный, как у хранилища.
func (r *fileRepo) ListByParent(ctx context.Context, userID string, parentID *string, limit, offset int) ([]*model.FileRecord, error) {
	var (
		query string
		args  []any
	)
	if parentID == nil {
		query = fmt.Sprintf(
			`SELECT %s FROM files WHERE user_id = $1 AND parent_id IS NULL LIMIT $2 OFFSET $3`,
			fileColumns,
		)
		args = []any{userID, limit, offset}
	} else {
		query = fmt.Sprintf(
			`SELECT %s FROM files WHERE user_id = $1 AND parent_id = $2 LIMIT $3 OFFSET $4`,
			fileColumns,
		)
		args = []any{userID, *parentID, limit, offset}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга файлов: %w", err)
	}
	defer rows.Close()

	var result []*model.FileRecord
	for rows.Next() {
		f := &model.FileRecord{}
		if err := scanFile(rows, f); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи файла: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// Count возвращает общее количество записей в files.
func (r *fileRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM files`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта файлов: %w", err)
	}
	return count, nil
}

// scanOne сканирует одну строку или возвращает ErrNotFound.
func (r *fileRepo) scanOne(row pgx.Row) (*model.FileRecord, error) {
	f := &model.FileRecord{}
	if err := scanFile(row, f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи файла: %w", err)
	}
	return f, nil
}

// scanFile сканирует столбцы fileColumns в FileRecord.
func scanFile(row pgx.Row, f *model.FileRecord) error {
	var typ string
	if err := row.Scan(
		&f.ID, &f.UserID, &f.Name, &typ, &f.IsPublic, &f.ParentID, &f.LocalPath, &f.CreatedAt,
	); err != nil {
		return err
	}
	f.Type = model.FileType(typ)
	return nil
}
