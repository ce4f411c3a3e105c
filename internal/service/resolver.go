package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/model"
	"github.com/Totarae/linkshortener/internal/repositories"
	"github.com/Totarae/linkshortener/internal/util"
	"go.uber.org/zap"
)

// LookupStrategy как короткий код превращается в ключ поиска ссылки.
type LookupStrategy string

const (
	// LookupByShortURL ищет по base_url + "/" + code. Стратегия по умолчанию.
	LookupByShortURL LookupStrategy = "short_url"
	// LookupByID трактует код как link_id.
	LookupByID LookupStrategy = "id"
)

// ParseLookupStrategy разбирает значение LINK_LOOKUP. Пустая строка даёт стратегию по умолчанию.
func ParseLookupStrategy(s string) (LookupStrategy, error) {
	switch LookupStrategy(s) {
	case "", LookupByShortURL:
		return LookupByShortURL, nil
	case LookupByID:
		return LookupByID, nil
	default:
		return "", fmt.Errorf("unknown link lookup strategy %q", s)
	}
}

// Resolver превращает короткий код в оригинальный URL и учитывает переход.
type Resolver struct {
	links    LinkRepository
	baseURL  string
	strategy LookupStrategy
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewResolver создаёт Resolver; пустая стратегия означает поиск по short_url.
func NewResolver(links LinkRepository, baseURL string, strategy LookupStrategy, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if strategy == "" {
		strategy = LookupByShortURL
	}
	return &Resolver{
		links:    links,
		baseURL:  baseURL,
		strategy: strategy,
		logger:   logger,
		metrics:  m,
	}
}

// Strategy текущая стратегия поиска.
func (r *Resolver) Strategy() LookupStrategy {
	return r.strategy
}

// Resolve находит ссылку по коду, увеличивает access_count и возвращает original_url.
// Инкремент выполняется до возврата, но его ошибка не мешает редиректу.
// Промах даёт ErrNotFound без каких-либо изменений.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	link, err := r.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.metrics.ObserveResolution(metrics.OutcomeNotFound)
			return "", err
		}
		r.metrics.ObserveResolution(metrics.OutcomeError)
		return "", err
	}

	if err := r.links.IncrementAccessCount(ctx, link.ID); err != nil {
		r.metrics.IncrementFailed()
		r.logger.Warn("failed to record link access",
			zap.Int64("link_id", link.ID),
			zap.Error(err),
		)
	}

	r.metrics.ObserveResolution(metrics.OutcomeFound)
	return link.OriginalURL, nil
}

func (r *Resolver) lookup(ctx context.Context, code string) (*model.Link, error) {
	var (
		link *model.Link
		err  error
	)
	switch r.strategy {
	case LookupByID:
		id, parseErr := strconv.ParseInt(code, 10, 64)
		// только каноническая запись: без знака и ведущих нулей
		if parseErr != nil || strconv.FormatInt(id, 10) != code {
			return nil, ErrNotFound
		}
		link, err = r.links.GetLinkByID(ctx, id)
	default:
		link, err = r.links.GetLinkByShortURL(ctx, util.ComposeShortURL(r.baseURL, code))
	}

	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup link %q: %w", code, err)
	}
	return link, nil
}
