package builder

import (
	"sync"

	"github.com/dd0wney/faultflow/pkg/model"
)

// Cache builds a model once and shares it. Concurrent first callers block
// until the single build finishes; everyone sees the same system or the same
// error.
type Cache struct {
	once  sync.Once
	build func() (*model.System, error)
	sys   *model.System
	err   error
}

// NewCache wraps build.
func NewCache(build func() (*model.System, error)) *Cache {
	return &Cache{build: build}
}

// Get returns the cached system, building it on first use.
func (c *Cache) Get() (*model.System, error) {
	c.once.Do(func() {
		c.sys, c.err = c.build()
	})
	return c.sys, c.err
}
