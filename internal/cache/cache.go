// Package cache содержит реализации кэша для снапшотов списков.
// Значения хранятся без TTL до явной инвалидации.
package cache

import (
	"context"
	"errors"
)

// ErrMiss возвращается Get, когда ключа нет.
var ErrMiss = errors.New("cache miss")

// Noop кэш, который ничего не хранит. Используется, когда кэш отключён.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte) error   { return nil }
func (Noop) Delete(context.Context, string) error        { return nil }
