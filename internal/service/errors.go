// errors.go — ошибки сервисного слоя Files Manager.
// Тексты ValidationError фиксированы контрактом API и отдаются
// клиенту дословно; остальные ошибки наружу не транслируются.
package service

import "errors"

// ValidationError — ошибка валидации входных данных (HTTP 400).
// Каждая ошибка цепочки валидации — отдельное значение,
// различимое через errors.Is.
type ValidationError struct {
	msg string
}

// Error возвращает текст ошибки в формате контракта API.
func (e *ValidationError) Error() string {
	return e.msg
}

// Ошибки валидации с фиксированными текстами контракта.
var (
	// ErrMissingName — не указано имя файла или папки.
	ErrMissingName = &ValidationError{"Missing name"}
	// ErrMissingType — тип не указан или не входит в допустимые.
	ErrMissingType = &ValidationError{"Missing type"}
	// ErrMissingData — для file/image не передано содержимое.
	ErrMissingData = &ValidationError{"Missing data"}
	// ErrMissingEmail — не указан email при регистрации.
	ErrMissingEmail = &ValidationError{"Missing email"}
	// ErrMissingPassword — не указан пароль при регистрации.
	ErrMissingPassword = &ValidationError{"Missing password"}
	// ErrUserExists — email уже занят.
	ErrUserExists = &ValidationError{"Already exist"}
	// ErrParentNotFound — parentId не парсится или не существует.
	// Непарсящийся идентификатор намеренно неотличим от несуществующего.
	ErrParentNotFound = &ValidationError{"Parent not found"}
	// ErrParentNotFolder — parentId указывает не на папку.
	ErrParentNotFolder = &ValidationError{"Parent is not a folder"}
)

// Прочие ошибки сервисного слоя.
var (
	// ErrNotFound — запись не найдена или принадлежит другому пользователю.
	ErrNotFound = errors.New("файл не найден")
	// ErrUnauthorized — неверные учётные данные или неразрешимый токен.
	ErrUnauthorized = errors.New("не авторизован")
)
