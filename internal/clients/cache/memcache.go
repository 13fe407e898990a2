package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/logger"
)

const (
	dashboardPrefix  = "dashboard:"
	allPeriodsKey    = "all"
	generationSuffix = ":generation"
	defaultRetries   = 5
)

type MemcacheClient struct {
	client       *memcache.Client
	dashboardTTL int32
	retries      int
	clock        func() time.Time
}

type config interface {
	Hosts() []string
	Timeout() time.Duration
}

func NewMemcache(config config, dashboardTTL int32, retries int) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	mc.Timeout = config.Timeout()
	if retries <= 0 {
		retries = defaultRetries
	}
	return &MemcacheClient{client: mc, dashboardTTL: dashboardTTL, retries: retries, clock: time.Now}, mc.Ping()
}

func (mc *MemcacheClient) Get(_ context.Context, key string) (string, bool, error) {
	item, err := mc.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "memcache get")
	}
	return string(item.Value), true, nil
}

func (mc *MemcacheClient) Set(_ context.Context, key, value string) error {
	return errors.Wrap(mc.client.Set(&memcache.Item{Key: key, Value: []byte(value)}), "memcache set")
}

func (mc *MemcacheClient) Remove(_ context.Context, key string) error {
	err := mc.client.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return errors.Wrap(err, "memcache delete")
	}
	return nil
}

// Update uses Add for absent keys and CompareAndSwap for present ones.
func (mc *MemcacheClient) Update(_ context.Context, key string, fn func(old string, found bool) (string, error)) error {
	for attempt := 0; attempt < mc.retries; attempt++ {
		item, err := mc.client.Get(key)
		if errors.Is(err, memcache.ErrCacheMiss) {
			value, fnErr := fn("", false)
			if fnErr != nil {
				return fnErr
			}
			err = mc.client.Add(&memcache.Item{Key: key, Value: []byte(value)})
			if errors.Is(err, memcache.ErrNotStored) {
				continue
			}
			return errors.Wrap(err, "memcache add")
		}
		if err != nil {
			return errors.Wrap(err, "memcache get")
		}

		value, err := fn(string(item.Value), true)
		if err != nil {
			return err
		}
		item.Value = []byte(value)
		err = mc.client.CompareAndSwap(item)
		if errors.Is(err, memcache.ErrCASConflict) || errors.Is(err, memcache.ErrNotStored) {
			logger.Info("memcache cas conflict, retrying", zap.String("key", key), zap.Int("attempt", attempt))
			continue
		}
		return errors.Wrap(err, "memcache cas")
	}
	return errors.Wrapf(customerr.ErrConflict, "update %s", key)
}

func formatDashboardKey(userID string, generation uint64, period string) string {
	if period == "" {
		period = allPeriodsKey
	}
	return dashboardPrefix + userID + ":" + strconv.FormatUint(generation, 10) + ":" + period
}

func formatGenerationKey(userID string) string {
	return dashboardPrefix + userID + generationSuffix
}

// DashboardGeneration returns the user's current cache generation. Dashboards
// are stored under their generation, so an entry computed before an
// invalidation is never read after it. A missing counter starts from the
// clock to stay clear of generations used before an eviction.
func (mc *MemcacheClient) DashboardGeneration(userID string) (uint64, error) {
	key := formatGenerationKey(userID)
	for attempt := 0; attempt < mc.retries; attempt++ {
		item, err := mc.client.Get(key)
		if err == nil {
			gen, err := strconv.ParseUint(strings.TrimSpace(string(item.Value)), 10, 64)
			return gen, errors.Wrap(err, "parse dashboard generation")
		}
		if !errors.Is(err, memcache.ErrCacheMiss) {
			return 0, errors.Wrap(err, "memcache get generation")
		}

		gen := uint64(mc.clock().UnixNano())
		err = mc.client.Add(&memcache.Item{Key: key, Value: []byte(strconv.FormatUint(gen, 10))})
		if err == nil {
			return gen, nil
		}
		if !errors.Is(err, memcache.ErrNotStored) {
			return 0, errors.Wrap(err, "memcache add generation")
		}
	}
	return 0, errors.Wrapf(customerr.ErrConflict, "generation %s", key)
}

func (mc *MemcacheClient) CacheDashboard(userID string, generation uint64, period string, dashboard []byte) error {
	logger.Info("cache dashboard", zap.String("userID", userID), zap.String("period", period))
	return mc.client.Set(&memcache.Item{
		Key:        formatDashboardKey(userID, generation, period),
		Value:      dashboard,
		Expiration: mc.dashboardTTL,
	})
}

// GetDashboard returns memcache.ErrCacheMiss when nothing is cached.
func (mc *MemcacheClient) GetDashboard(userID string, generation uint64, period string) ([]byte, error) {
	item, err := mc.client.Get(formatDashboardKey(userID, generation, period))
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// InvalidateCache moves the user to a new generation; entries of older
// generations expire on their own.
func (mc *MemcacheClient) InvalidateCache(userID string) error {
	logger.Info("invalidate cache", zap.String("userID", userID))

	key := formatGenerationKey(userID)
	for attempt := 0; attempt < mc.retries; attempt++ {
		_, err := mc.client.Increment(key, 1)
		if !errors.Is(err, memcache.ErrCacheMiss) {
			return errors.Wrap(err, "bump dashboard generation")
		}

		gen := uint64(mc.clock().UnixNano())
		err = mc.client.Add(&memcache.Item{Key: key, Value: []byte(strconv.FormatUint(gen, 10))})
		if !errors.Is(err, memcache.ErrNotStored) {
			return errors.Wrap(err, "seed dashboard generation")
		}
		// seeded concurrently, bump that one
	}
	return errors.Wrapf(customerr.ErrConflict, "generation %s", key)
}

func IsMiss(err error) bool {
	return errors.Is(err, memcache.ErrCacheMiss)
}
