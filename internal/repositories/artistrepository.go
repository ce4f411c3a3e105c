package repositories

import (
	"context"
	"fmt"

	"github.com/Totarae/linkshortener/internal/database"
	"github.com/Totarae/linkshortener/internal/model"
)

type ArtistRepository struct {
	DB *database.DB
}

func NewArtistRepository(db *database.DB) *ArtistRepository {
	return &ArtistRepository{DB: db}
}

func (r *ArtistRepository) CreateArtist(ctx context.Context, a *model.Artist) error {
	query := `INSERT INTO artists (name) VALUES ($1) RETURNING artist_id, created_at`
	if err := r.DB.Pool.QueryRow(ctx, query, a.Name).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("insert artist: %w", err)
	}
	return nil
}

func (r *ArtistRepository) ListArtists(ctx context.Context) ([]*model.Artist, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT artist_id, name, created_at FROM artists ORDER BY artist_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	artists := make([]*model.Artist, 0)
	for rows.Next() {
		a := &model.Artist{}
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
