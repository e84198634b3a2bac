package mirror

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// BreakerGetter wraps a Getter with one circuit breaker per host. A breaker
// trips after Threshold consecutive failures and stays open for an
// exponentially growing interval.
type BreakerGetter struct {
	getter    Getter
	Threshold int64

	mu       sync.RWMutex
	breakers map[string]*circuit.Breaker
}

// NewBreakerGetter wraps g.
func NewBreakerGetter(g Getter) *BreakerGetter {
	return &BreakerGetter{
		getter:    g,
		Threshold: 5,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

func (b *BreakerGetter) breaker(host string) *circuit.Breaker {
	b.mu.RLock()
	cb, ok := b.breakers[host]
	b.mu.RUnlock()
	if ok {
		return cb
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cb, ok := b.breakers[host]; ok {
		return cb
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	cb = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(b.Threshold),
	})
	b.breakers[host] = cb
	return cb
}

// Get downloads rawURL unless the breaker for its host is open.
func (b *BreakerGetter) Get(ctx context.Context, rawURL string) ([]byte, error) {
	host := hostOf(rawURL)
	cb := b.breaker(host)
	if !cb.Ready() {
		return nil, fmt.Errorf("circuit breaker open for %s: %w", host, ErrUpstreamDown)
	}

	var data []byte
	err := cb.Call(func() error {
		var err error
		data, err = b.getter.Get(ctx, rawURL)
		return err
	}, 0)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// State reports "open" or "closed" for every host seen so far.
func (b *BreakerGetter) State() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.breakers))
	for host, cb := range b.breakers {
		if cb.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

var _ Getter = (*BreakerGetter)(nil)
