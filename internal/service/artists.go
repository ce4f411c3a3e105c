package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Totarae/linkshortener/internal/model"
	"go.uber.org/zap"
)

// ArtistService создание и кэшируемый список артистов.
type ArtistService struct {
	artists ArtistRepository
	cache   Cache
	logger  *zap.Logger
}

// NewArtistService создаёт ArtistService.
func NewArtistService(artists ArtistRepository, c Cache, logger *zap.Logger) *ArtistService {
	return &ArtistService{artists: artists, cache: c, logger: logger}
}

// Create сохраняет артиста и сбрасывает кэш списка.
func (s *ArtistService) Create(ctx context.Context, req model.CreateArtistRequest) (*model.Artist, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	artist := &model.Artist{Name: req.Name}
	if err := s.artists.CreateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}

	invalidate(ctx, s.cache, s.logger, ArtistsCacheKey)
	return artist, nil
}

// List отдаёт всех артистов через read-through кэш.
func (s *ArtistService) List(ctx context.Context) ([]*model.Artist, error) {
	artists, err := readThrough(ctx, s.cache, s.logger, ArtistsCacheKey, s.artists.ListArtists)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}
