// user.go — модель пользователя Files Manager.
package model

import "time"

// User — запись пользователя в таблице users.
type User struct {
	// ID — UUID пользователя (назначается БД при вставке)
	ID string
	// Email — электронная почта, уникальна
	Email string
	// PasswordHash — bcrypt-хэш пароля, наружу не отдаётся
	PasswordHash string
	// CreatedAt — время регистрации
	CreatedAt time.Time
}

// View возвращает внешнее представление пользователя (без хэша пароля).
func (u *User) View() UserView {
	return UserView{
		ID:    u.ID,
		Email: u.Email,
	}
}

// UserView — JSON-представление пользователя.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
