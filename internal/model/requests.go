package model

// CreateLinkRequest тело запроса POST /shortUrl.
type CreateLinkRequest struct {
	OriginalURL string  `json:"original_url" validate:"required"`
	Code        string  `json:"code" validate:"required,excludesall=/?#"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	IsFavorite  *bool   `json:"is_favorite"`
	Description *string `json:"description"`
}

// UpdateLinkRequest тело запроса PUT /shortUrl/{id}.
type UpdateLinkRequest struct {
	IsFavorite  *bool   `json:"is_favorite"`
	Description *string `json:"description"`
}

// CreateUserRequest тело запроса POST /user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest тело запроса POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse ответ на успешный вход.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateArtistRequest тело запроса POST /artist.
type CreateArtistRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateLinkResponse ответ на создание ссылки.
type CreateLinkResponse struct {
	Message string `json:"message"`
	Link    *Link  `json:"link"`
}
