package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Totarae/linkshortener/internal/model"
	"github.com/Totarae/linkshortener/internal/repositories"
	"github.com/Totarae/linkshortener/internal/util"
	"go.uber.org/zap"
)

// LinkService CRUD над ссылками. access_count здесь никогда не меняется.
type LinkService struct {
	links    LinkRepository
	users    UserRepository
	baseURL  string
	reserved map[string]struct{}
	logger   *zap.Logger
}

// NewLinkService создаёт LinkService. reserved перечисляет коды, которые
// маршрутизатор отдаёт другим обработчикам, и такие коды не принимаются.
func NewLinkService(links LinkRepository, users UserRepository, baseURL string, reserved []string, logger *zap.Logger) *LinkService {
	set := make(map[string]struct{}, len(reserved))
	for _, code := range reserved {
		set[code] = struct{}{}
	}
	return &LinkService{
		links:    links,
		users:    users,
		baseURL:  baseURL,
		reserved: set,
		logger:   logger,
	}
}

// newLinkFromRequest проверяет запрос и явно подставляет значения по умолчанию.
func newLinkFromRequest(req model.CreateLinkRequest, baseURL string) (*model.Link, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !util.IsAbsoluteURL(req.OriginalURL) {
		return nil, invalid("field original_url: must be an absolute URL")
	}

	isFavorite := false
	if req.IsFavorite != nil {
		isFavorite = *req.IsFavorite
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	userID := req.UserID
	return &model.Link{
		OriginalURL: req.OriginalURL,
		ShortURL:    util.ComposeShortURL(baseURL, req.Code),
		UserID:      &userID,
		AccessCount: 0,
		IsFavorite:  isFavorite,
		Description: description,
	}, nil
}

// Create создаёт ссылку для существующего пользователя.
// Дубликаты short_url не проверяются.
func (s *LinkService) Create(ctx context.Context, req model.CreateLinkRequest) (*model.Link, error) {
	link, err := newLinkFromRequest(req, s.baseURL)
	if err != nil {
		return nil, err
	}
	if _, ok := s.reserved[req.Code]; ok {
		return nil, invalid("field code: %q is a reserved path", req.Code)
	}

	if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("check link owner: %w", err)
	}

	if err := s.links.CreateLink(ctx, link); err != nil {
		// пользователя могли удалить между проверкой и вставкой
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.logger.Info("link created",
		zap.Int64("link_id", link.ID),
		zap.String("short_url", link.ShortURL),
	)
	return link, nil
}

// Get возвращает ссылку по id.
func (s *LinkService) Get(ctx context.Context, id int64) (*model.Link, error) {
	link, err := s.links.GetLinkByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get link")
	}
	return link, nil
}

// Update меняет только переданные is_favorite и description.
func (s *LinkService) Update(ctx context.Context, id int64, req model.UpdateLinkRequest) (*model.Link, error) {
	patch := model.LinkPatch{IsFavorite: req.IsFavorite, Description: req.Description}
	if patch.Empty() {
		return nil, invalid("at least one of is_favorite, description is required")
	}

	link, err := s.links.UpdateLink(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, "update link")
	}
	return link, nil
}

// Delete удаляет ссылку.
func (s *LinkService) Delete(ctx context.Context, id int64) error {
	if err := s.links.DeleteLink(ctx, id); err != nil {
		return mapNotFound(err, "delete link")
	}
	s.logger.Info("link deleted", zap.Int64("link_id", id))
	return nil
}

// ListByUser возвращает ссылки пользователя; пустой результат не ошибка.
func (s *LinkService) ListByUser(ctx context.Context, userID int64) ([]*model.Link, error) {
	links, err := s.links.GetLinksByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	if links == nil {
		links = []*model.Link{}
	}
	return links, nil
}

func mapNotFound(err error, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
