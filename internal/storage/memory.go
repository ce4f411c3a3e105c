// Package storage содержит in-memory хранилище, которое используется,
// когда DATABASE_DSN не задан, и как хранилище в тестах.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Totarae/linkshortener/internal/model"
	"github.com/Totarae/linkshortener/internal/repositories"
)

// MemoryStore provides a thread-safe store for users, links and artists.
// Ошибки совпадают с ошибками пакета repositories, поэтому сервисы
// не различают бэкенды.
type MemoryStore struct {
	mutex   sync.RWMutex
	users   map[int64]model.User
	links   map[int64]model.Link
	artists map[int64]model.Artist
	nextID  struct{ user, link, artist int64 }
	now     func() time.Time
}

// NewMemoryStore initializes an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[int64]model.User),
		links:   make(map[int64]model.Link),
		artists: make(map[int64]model.Artist),
		now:     time.Now,
	}
}

// CreateUser сохраняет пользователя; email уникален.
func (s *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	s.nextID.user++
	u.ID = s.nextID.user
	u.CreatedAt = s.now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateLink сохраняет ссылку. Владелец, если указан, должен существовать.
func (s *MemoryStore) CreateLink(_ context.Context, link *model.Link) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if link.UserID != nil {
		if _, ok := s.users[*link.UserID]; !ok {
			return repositories.ErrForeignKey
		}
	}
	s.nextID.link++
	link.ID = s.nextID.link
	link.CreatedAt = s.now().UTC()
	s.links[link.ID] = cloneLink(*link)
	return nil
}

func (s *MemoryStore) GetLinkByID(_ context.Context, id int64) (*model.Link, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	link, ok := s.links[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := cloneLink(link)
	return &out, nil
}

// GetLinkByShortURL возвращает ссылку с минимальным ID среди совпадающих.
func (s *MemoryStore) GetLinkByShortURL(_ context.Context, shortURL string) (*model.Link, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var found *model.Link
	for _, link := range s.links {
		if link.ShortURL != shortURL {
			continue
		}
		if found == nil || link.ID < found.ID {
			l := cloneLink(link)
			found = &l
		}
	}
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

// IncrementAccessCount увеличивает счётчик под блокировкой записи.
func (s *MemoryStore) IncrementAccessCount(_ context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, ok := s.links[id]
	if !ok {
		return repositories.ErrNotFound
	}
	link.AccessCount++
	s.links[id] = link
	return nil
}

func (s *MemoryStore) UpdateLink(_ context.Context, id int64, patch model.LinkPatch) (*model.Link, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, ok := s.links[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.IsFavorite != nil {
		link.IsFavorite = *patch.IsFavorite
	}
	if patch.Description != nil {
		link.Description = *patch.Description
	}
	s.links[id] = link
	out := cloneLink(link)
	return &out, nil
}

func (s *MemoryStore) DeleteLink(_ context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.links[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.links, id)
	return nil
}

func (s *MemoryStore) GetLinksByUserID(_ context.Context, userID int64) ([]*model.Link, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	links := make([]*model.Link, 0)
	for _, link := range s.links {
		if link.UserID != nil && *link.UserID == userID {
			l := cloneLink(link)
			links = append(links, &l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

func (s *MemoryStore) CreateArtist(_ context.Context, a *model.Artist) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextID.artist++
	a.ID = s.nextID.artist
	a.CreatedAt = s.now().UTC()
	s.artists[a.ID] = *a
	return nil
}

func (s *MemoryStore) ListArtists(_ context.Context) ([]*model.Artist, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	artists := make([]*model.Artist, 0, len(s.artists))
	for _, a := range s.artists {
		artists = append(artists, &a)
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].ID < artists[j].ID })
	return artists, nil
}

// Ping всегда успешен: памяти нечему отваливаться.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// cloneLink отвязывает UserID от указателя вызывающего.
func cloneLink(l model.Link) model.Link {
	if l.UserID != nil {
		id := *l.UserID
		l.UserID = &id
	}
	return l
}
