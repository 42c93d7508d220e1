// helpers_test.go — in-memory фейки репозиториев и хранилищ для юнит-тестов
// сервисного слоя. Покрывают те же контракты, что pgx-реализации,
// включая сентинелы ErrNotFound/ErrAlreadyExists.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/gofiman/internal/domain/model"
	"github.com/bigkaa/gofiman/internal/repository"
	"github.com/bigkaa/gofiman/internal/tokenstore"
)

// testLogger — логгер, пишущий в никуда.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFileRepo — in-memory реализация repository.FileRepository.
type fakeFileRepo struct {
	records map[string]*model.FileRecord
	// insertErr подменяет результат Insert для негативных сценариев
	insertErr error
	// getByIDCalls считает обращения к GetByID (проверка работы кэша)
	getByIDCalls int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{records: make(map[string]*model.FileRecord)}
}

func (r *fakeFileRepo) Insert(_ context.Context, f *model.FileRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	f.ID = uuid.NewString()
	f.CreatedAt = time.Now()
	r.records[f.ID] = f
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, fileID string) (*model.FileRecord, error) {
	r.getByIDCalls++
	f, ok := r.records[fileID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) GetByIDForUser(_ context.Context, fileID, userID string) (*model.FileRecord, error) {
	f, ok := r.records[fileID]
	if !ok || f.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) ListByParent(_ context.Context, userID string, parentID *string, limit, offset int) ([]*model.FileRecord, error) {
	var matched []*model.FileRecord
	for _, f := range r.records {
		if f.UserID != userID {
			continue
		}
		switch {
		case parentID == nil && f.ParentID != nil:
			continue
		case parentID != nil && (f.ParentID == nil || *f.ParentID != *parentID):
			continue
		}
		matched = append(matched, f)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeFileRepo) Count(_ context.Context) (int, error) {
	return len(r.records), nil
}

// fakeUserRepo — in-memory реализация repository.UserRepository.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*model.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, userID string) (bool, error) {
	_, ok := r.users[userID]
	return ok, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

// fakeBlobWriter — запись blob'ов в память вместо диска.
type fakeBlobWriter struct {
	blobs map[string][]byte
	// writeErr подменяет результат Write для негативных сценариев
	writeErr error
}

func newFakeBlobWriter() *fakeBlobWriter {
	return &fakeBlobWriter{blobs: make(map[string][]byte)}
}

func (w *fakeBlobWriter) Write(data []byte) (string, error) {
	if w.writeErr != nil {
		return "", w.writeErr
	}
	path := fmt.Sprintf("/tmp/files_manager/%s", uuid.NewString())
	w.blobs[path] = data
	return path, nil
}

// fakeTokenStore — in-memory реализация TokenStore.
type fakeTokenStore struct {
	tokens map[string]string
	// putErr подменяет результат Put для негативных сценариев
	putErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) Put(_ context.Context, token, userID string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.tokens[token] = userID
	return nil
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return tokenstore.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return nil
}

// errDB — общая ошибка "отказавшей БД" для негативных сценариев.
var errDB = errors.New("ошибка базы данных")
