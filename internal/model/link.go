package model

import "time"

// Link связывает короткий код с оригинальным URL.
type Link struct {
	ID          int64     `json:"link_id"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	UserID      *int64    `json:"user_id"`
	AccessCount int64     `json:"access_count"`
	IsFavorite  bool      `json:"is_favorite"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LinkPatch содержит изменяемые поля ссылки. Nil означает "не менять".
type LinkPatch struct {
	IsFavorite  *bool
	Description *string
}

// Empty сообщает, что в патче нет ни одного поля.
func (p LinkPatch) Empty() bool {
	return p.IsFavorite == nil && p.Description == nil
}
