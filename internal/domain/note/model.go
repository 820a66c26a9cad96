package note

import (
	"fmt"
	"strings"
	"time"
)

// maxContentLen - ограничение на размер текста заметки
const maxContentLen = 1024 * 1024

// Note - заметка пользователя. ID назначается сервером и для клиента непрозрачен.
type Note struct {
	ID        string    `json:"id"`
	UserID    int       `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft - данные заметки, которые вводит пользователь при создании и редактировании.
type Draft struct {
	Title   string `json:"title" minLength:"1" maxLength:"200"`
	Content string `json:"content" minLength:"1"`
}

// Validate проверяет, что ни заголовок, ни текст не пустые.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: title or content cannot be empty", ErrInvalidInput)
	}

	if len(d.Content) > maxContentLen {
		return fmt.Errorf("%w: content too large (max 1MB)", ErrInvalidInput)
	}

	return nil
}
