package prioritymap

import (
	"cmp"
	"log/slog"

	"github.com/amp-labs/amp-ranked/compare"
)

// Option configures a Map at construction time.
type Option[K cmp.Ordered, V Number] func(*config[K, V])

type config[K cmp.Ordered, V Number] struct {
	keyOrder  compare.Func[K]
	logger    *slog.Logger
	overrides []Item[K, V]
}

func newConfig[K cmp.Ordered, V Number](opts []Option[K, V]) *config[K, V] {
	cfg := &config[K, V]{
		keyOrder: compare.Ordered[K],
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithKeyOrder replaces the order used to break ties between keys holding
// equal values. It must be a total order that reports zero only for equal
// keys; compare.Natural is a common choice for string keys.
//
// Example:
//
//	m := prioritymap.New(prioritymap.WithKeyOrder[string, int](compare.Natural))
func WithKeyOrder[K cmp.Ordered, V Number](order compare.Func[K]) Option[K, V] {
	return func(c *config[K, V]) {
		if order != nil {
			c.keyOrder = order
		}
	}
}

// WithLogger routes the Map's debug logging (merge strategy choices, prunes)
// to logger instead of the process default.
func WithLogger[K cmp.Ordered, V Number](logger *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		c.logger = logger
	}
}

// WithOverrides sets explicit entries after the constructor's own source has
// been loaded. Later overrides win over earlier ones and over the source.
func WithOverrides[K cmp.Ordered, V Number](items ...Item[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.overrides = append(c.overrides, items...)
	}
}
