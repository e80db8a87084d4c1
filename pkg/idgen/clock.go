package idgen

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/timeshard/pkg/resilience"
	"github.com/redis/go-redis/v9"
)

// Clock abstracts the time source for the ID generator.
type Clock interface {
	// Now returns the current timestamp in milliseconds since the Unix epoch.
	Now() int64
}

// SystemClock uses the local system time.
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

const defaultRedisClockTimeout = 50 * time.Millisecond

// RedisClock reads time from the Redis TIME command so that generators sharing one Redis
// observe one time source. While Redis is unreachable it serves the fallback clock; a
// switch between sources that steps time backwards surfaces as ErrClockMovedBack from Next.
type RedisClock struct {
	client   redis.Cmdable
	breaker  *resilience.CircuitBreaker
	fallback Clock
	timeout  time.Duration
}

// RedisClockOption customizes a RedisClock.
type RedisClockOption func(*RedisClock)

// WithRedisTimeout bounds each TIME round trip.
func WithRedisTimeout(d time.Duration) RedisClockOption {
	return func(r *RedisClock) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithFallbackClock replaces the clock used while Redis is unavailable.
func WithFallbackClock(c Clock) RedisClockOption {
	return func(r *RedisClock) {
		if c != nil {
			r.fallback = c
		}
	}
}

// WithBreaker replaces the circuit breaker guarding Redis.
func WithBreaker(cb *resilience.CircuitBreaker) RedisClockOption {
	return func(r *RedisClock) {
		if cb != nil {
			r.breaker = cb
		}
	}
}

func NewRedisClock(client redis.Cmdable, opts ...RedisClockOption) *RedisClock {
	r := &RedisClock{
		client:   client,
		fallback: SystemClock{},
		timeout:  defaultRedisClockTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.breaker == nil {
		r.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-clock",
			FailureThreshold: 3,
			OpenTimeout:      5 * time.Second,
			OnStateChange: func(name string, from, to resilience.CircuitBreakerState) {
				logger.Warnw("Clock source breaker changed state", "name", name, "from", string(from), "to", string(to))
			},
		})
	}
	return r
}

func (r *RedisClock) Now() int64 {
	var ms int64
	err := r.breaker.Execute(context.Background(), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		// TIME returns [seconds, microseconds]
		t, err := r.client.Time(ctx).Result()
		if err != nil {
			return err
		}
		ms = t.UnixMilli()
		return nil
	})
	if err != nil {
		if !errors.Is(err, resilience.ErrCircuitOpen) {
			logger.Warnw("Redis clock unavailable, using fallback clock", "error", err.Error())
		}
		return r.fallback.Now()
	}
	return ms
}

// BreakerState exposes the state of the breaker guarding Redis.
func (r *RedisClock) BreakerState() resilience.CircuitBreakerState {
	return r.breaker.State()
}
