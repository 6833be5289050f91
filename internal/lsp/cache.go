package lsp

import (
	"go.lsp.dev/uri"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/harry-hov/debughover/internal/hover"
)

// Cache holds the hover controller of every open document.
type Cache struct {
	controllers cmap.ConcurrentMap[string, *hover.Controller]
}

func NewCache() *Cache {
	return &Cache{
		controllers: cmap.New[*hover.Controller](),
	}
}

func (c *Cache) Get(u uri.URI) (*hover.Controller, bool) {
	return c.controllers.Get(string(u))
}

// Put registers ctrl for u, disposing the controller it replaces.
func (c *Cache) Put(u uri.URI, ctrl *hover.Controller) {
	var replaced *hover.Controller
	c.controllers.Upsert(string(u), ctrl, func(exist bool, old, next *hover.Controller) *hover.Controller {
		if exist && old != next {
			replaced = old
		}
		return next
	})
	if replaced != nil {
		replaced.Dispose()
	}
}

// Dispose removes and disposes the controller of u, if any.
func (c *Cache) Dispose(u uri.URI) {
	if ctrl, ok := c.controllers.Pop(string(u)); ok {
		ctrl.Dispose()
	}
}

func (c *Cache) DisposeAll() {
	for _, key := range c.controllers.Keys() {
		if ctrl, ok := c.controllers.Pop(key); ok {
			ctrl.Dispose()
		}
	}
}
