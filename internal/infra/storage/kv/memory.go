package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryStore хранилище в памяти процесса поверх go-cache.
// Данные живут до перезапуска; подходит для одного экземпляра и тестов.
type MemoryStore struct {
	c  *cache.Cache
	mu sync.Mutex // защищает изменение хэшей
}

// NewMemoryStore создает пустое хранилище без истечения ключей
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", ErrKeyNotFound
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %s holds %T, not a string", ErrStore, key, v)
	}
	return str, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) HGet(_ context.Context, key, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.hash(key)
	if err != nil {
		return "", err
	}
	v, ok := h[field]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.hash(key)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) HSet(_ context.Context, key, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.hash(key)
	if err != nil {
		return err
	}
	h[field] = value
	s.c.Set(key, h, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) HDel(_ context.Context, key, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.hash(key)
	if err != nil {
		return err
	}
	if _, ok := h[field]; !ok {
		return ErrKeyNotFound
	}
	delete(h, field)
	return nil
}

// hash возвращает хэш по ключу, создавая пустой при отсутствии. Вызывать под s.mu.
func (s *MemoryStore) hash(key string) (map[string]string, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return map[string]string{}, nil
	}
	h, ok := v.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("%w: key %s holds %T, not a hash", ErrStore, key, v)
	}
	return h, nil
}
