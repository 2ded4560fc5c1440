package prefs

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*StoreMock)(nil)

// StoreMock is an in-memory Store for handler and service tests.
// TTLs are ignored, entries live until deleted.
type StoreMock struct {
	Data  map[string]string
	mutex sync.Mutex
}

func NewStoreMock() *StoreMock {
	return &StoreMock{
		Data: map[string]string{},
	}
}

func (s *StoreMock) Get(_ context.Context, key string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	val, ok := s.Data[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *StoreMock) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Data[key] = value
	return nil
}

func (s *StoreMock) Del(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.Data, key)
	return nil
}
