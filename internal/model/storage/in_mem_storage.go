package storage

import (
	"context"
	"sync"
)

type InMemStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{items: make(map[string]string)}
}

func (s *InMemStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *InMemStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *InMemStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Update holds the lock across fn, so it never conflicts.
func (s *InMemStorage) Update(_ context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, found := s.items[key]
	v, err := fn(old, found)
	if err != nil {
		return err
	}
	s.items[key] = v
	return nil
}
