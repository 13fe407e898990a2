package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jinzhu/now"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/clients/cache"
	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/logger"
)

const (
	AllTime = ""
	Week    = "week"
	Month   = "month"
	Year    = "year"
)

var Periods = []string{AllTime, Week, Month, Year}

type transactionsReader interface {
	GetUserTransactions(ctx context.Context, userID string) ([]transaction.Record, error)
}

// dashboardCache keeps dashboards per user generation. InvalidateCache moves
// the user to a new generation.
type dashboardCache interface {
	DashboardGeneration(userID string) (uint64, error)
	GetDashboard(userID string, generation uint64, period string) ([]byte, error)
	CacheDashboard(userID string, generation uint64, period string, dashboard []byte) error
	InvalidateCache(userID string) error
}

type Service struct {
	storage   transactionsReader
	cache     dashboardCache
	formatter *Formatter
	clock     func() time.Time
}

type Option func(*Service)

func WithCache(c dashboardCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func NewService(storage transactionsReader, formatter *Formatter, opts ...Option) *Service {
	s := &Service{
		storage:   storage,
		formatter: formatter,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ValidatePeriod(period string) error {
	for _, p := range Periods {
		if p == period {
			return nil
		}
	}
	return customerr.NewValidation("period", "Período "+period+" não suportado!")
}

func (s *Service) GetDashboard(ctx context.Context, u user.User, period string) (d Dashboard, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "getDashboard")
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}()
	span.SetTag("period", period)

	if err = u.Validate(); err != nil {
		return Dashboard{}, customerr.NewValidation("user", err.Error())
	}
	if err = ValidatePeriod(period); err != nil {
		return Dashboard{}, err
	}

	// the generation is taken before the records are read, so a write that
	// lands in between leaves this result under an outdated generation
	gen, cacheable := s.generation(u.ID)
	if cacheable {
		if cached, ok := s.fromCache(u.ID, gen, period); ok {
			return cached, nil
		}
	}

	d, err = s.build(ctx, u.ID, period)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "get dashboard")
	}
	if cacheable {
		s.toCache(u.ID, gen, period, d)
	}
	return d, nil
}

// WarmUp recomputes and caches the user's dashboards for every period.
func (s *Service) WarmUp(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "warmUpDashboard")
	defer span.Finish()

	gen, cacheable := s.generation(userID)
	if !cacheable {
		return nil
	}

	records, err := s.storage.GetUserTransactions(ctx, userID)
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrap(err, "warm up dashboard")
	}
	for _, p := range Periods {
		s.toCache(userID, gen, p, Aggregate(filterAfter(records, s.periodStart(p)), s.formatter))
	}
	return nil
}

// Invalidate drops the user's cached dashboards after a write.
func (s *Service) Invalidate(userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(userID); err != nil {
		logger.Error("failed to invalidate dashboard cache", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *Service) build(ctx context.Context, userID, period string) (Dashboard, error) {
	records, err := s.storage.GetUserTransactions(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	return Aggregate(filterAfter(records, s.periodStart(period)), s.formatter), nil
}

func (s *Service) periodStart(period string) time.Time {
	t := now.With(s.clock().In(s.formatter.loc))
	switch period {
	case Week:
		return t.BeginningOfWeek()
	case Month:
		return t.BeginningOfMonth()
	case Year:
		return t.BeginningOfYear()
	}
	return time.Time{}
}

func filterAfter(records []transaction.Record, start time.Time) []transaction.Record {
	if start.IsZero() {
		return records
	}
	res := make([]transaction.Record, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) {
			res = append(res, r)
		}
	}
	return res
}

func (s *Service) generation(userID string) (uint64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.DashboardGeneration(userID)
	if err != nil {
		logger.Error("failed to read dashboard generation", zap.String("userID", userID), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (s *Service) fromCache(userID string, gen uint64, period string) (Dashboard, bool) {
	raw, err := s.cache.GetDashboard(userID, gen, period)
	if err != nil {
		if !cache.IsMiss(err) {
			logger.Error("failed to read dashboard cache", zap.String("userID", userID), zap.Error(err))
		}
		return Dashboard{}, false
	}

	var d Dashboard
	if err = json.Unmarshal(raw, &d); err != nil {
		logger.Error("corrupted dashboard in cache", zap.String("userID", userID), zap.Error(err))
		return Dashboard{}, false
	}
	return d, true
}

func (s *Service) toCache(userID string, gen uint64, period string, d Dashboard) {
	raw, err := json.Marshal(d)
	if err == nil {
		err = s.cache.CacheDashboard(userID, gen, period, raw)
	}
	if err != nil {
		logger.Error("failed to cache dashboard", zap.String("userID", userID), zap.Error(err))
	}
}
