package storage

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storageOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gofinances",
		Subsystem: "storage",
		Name:      "operations_total",
	},
	[]string{"backend", "op", "status"},
)

type instrumentedStore struct {
	backend string
	next    KVStore
}

// WithMetrics counts every operation of next by backend, operation and outcome.
func WithMetrics(backend string, next KVStore) KVStore {
	return &instrumentedStore{backend: backend, next: next}
}

func (s *instrumentedStore) observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storageOperations.WithLabelValues(s.backend, op, status).Inc()
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, found, err := s.next.Get(ctx, key)
	s.observe("get", err)
	return v, found, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	err := s.next.Set(ctx, key, value)
	s.observe("set", err)
	return err
}

func (s *instrumentedStore) Remove(ctx context.Context, key string) error {
	err := s.next.Remove(ctx, key)
	s.observe("remove", err)
	return err
}

func (s *instrumentedStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := s.next.Update(ctx, key, fn)
	s.observe("update", err)
	return err
}
