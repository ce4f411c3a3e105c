package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Totarae/linkshortener/internal/database"
	"github.com/Totarae/linkshortener/internal/model"
	"github.com/jackc/pgx/v5"
)

const linkColumns = `link_id, original_url, short_url, user_id, access_count, is_favorite, description, created_at`

// LinkRepository хранит ссылки в PostgreSQL.
type LinkRepository struct {
	DB *database.DB
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db *database.DB) *LinkRepository {
	return &LinkRepository{DB: db}
}

func scanLink(row pgx.Row) (*model.Link, error) {
	link := &model.Link{}
	err := row.Scan(&link.ID, &link.OriginalURL, &link.ShortURL, &link.UserID,
		&link.AccessCount, &link.IsFavorite, &link.Description, &link.CreatedAt)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// CreateLink вставляет ссылку и заполняет ID и CreatedAt.
func (r *LinkRepository) CreateLink(ctx context.Context, link *model.Link) error {
	query := `INSERT INTO links (original_url, short_url, user_id, access_count, is_favorite, description)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING link_id, created_at`

	err := r.DB.Pool.QueryRow(ctx, query, link.OriginalURL, link.ShortURL, link.UserID,
		link.AccessCount, link.IsFavorite, link.Description).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert link: %w", translate(err))
	}
	return nil
}

// GetLinkByID возвращает ссылку по первичному ключу.
func (r *LinkRepository) GetLinkByID(ctx context.Context, id int64) (*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE link_id = $1`
	link, err := scanLink(r.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select link by id: %w", err)
	}
	return link, nil
}

// GetLinkByShortURL возвращает самую раннюю ссылку с точным совпадением short_url.
// Уникальность short_url не гарантируется, поэтому берётся минимальный link_id.
func (r *LinkRepository) GetLinkByShortURL(ctx context.Context, shortURL string) (*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE short_url = $1 ORDER BY link_id LIMIT 1`
	link, err := scanLink(r.DB.Pool.QueryRow(ctx, query, shortURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select link by short url: %w", err)
	}
	return link, nil
}

// IncrementAccessCount атомарно увеличивает счётчик переходов на единицу.
func (r *LinkRepository) IncrementAccessCount(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE links SET access_count = access_count + 1 WHERE link_id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment access count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLink меняет только переданные поля одной командой.
func (r *LinkRepository) UpdateLink(ctx context.Context, id int64, patch model.LinkPatch) (*model.Link, error) {
	query := `UPDATE links
              SET is_favorite = COALESCE($2, is_favorite),
                  description = COALESCE($3, description)
              WHERE link_id = $1
              RETURNING ` + linkColumns

	link, err := scanLink(r.DB.Pool.QueryRow(ctx, query, id, patch.IsFavorite, patch.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update link: %w", err)
	}
	return link, nil
}

// DeleteLink удаляет ссылку физически.
func (r *LinkRepository) DeleteLink(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM links WHERE link_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLinksByUserID возвращает все ссылки пользователя.
func (r *LinkRepository) GetLinksByUserID(ctx context.Context, userID int64) ([]*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY link_id`
	rows, err := r.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by user: %w", err)
	}
	defer rows.Close()

	results := make([]*model.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return results, nil
}

// Ping проверяет доступность базы данных.
func (r *LinkRepository) Ping(ctx context.Context) error {
	return r.DB.Ping(ctx)
}
