package cache

import (
	"go.uber.org/fx"
)

// Module provides the view cache and its interfaces
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewInMemoryCache,
			func(c *InMemoryCache) Cache { return c },
			func(c *InMemoryCache) ViewInvalidator { return c },
		),
	)
}
