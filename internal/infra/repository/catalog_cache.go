package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// CachedCatalog keeps recently read employees and services in memory.
// Catalog rows are read-only inputs for booking, so a short TTL is enough
// to pick up edits made elsewhere. Misses are never cached.
type CachedCatalog struct {
	next      domain.CatalogReader
	employees *expirable.LRU[uint, models.Employee]
	services  *expirable.LRU[uint, models.Service]
}

func NewCachedCatalog(next domain.CatalogReader, size int, ttl time.Duration) *CachedCatalog {
	if size <= 0 {
		size = 128
	}

	return &CachedCatalog{
		next:      next,
		employees: expirable.NewLRU[uint, models.Employee](size, nil, ttl),
		services:  expirable.NewLRU[uint, models.Service](size, nil, ttl),
	}
}

func (c *CachedCatalog) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	if emp, ok := c.employees.Get(id); ok {
		return &emp, nil
	}

	emp, err := c.next.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	c.employees.Add(id, *emp)
	return emp, nil
}

func (c *CachedCatalog) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if svc, ok := c.services.Get(id); ok {
		return &svc, nil
	}

	svc, err := c.next.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	c.services.Add(id, *svc)
	return svc, nil
}

// ForgetEmployee drops a cached row after a catalog write.
func (c *CachedCatalog) ForgetEmployee(id uint) {
	c.employees.Remove(id)
}

func (c *CachedCatalog) ForgetService(id uint) {
	c.services.Remove(id)
}

var _ domain.CatalogReader = (*CachedCatalog)(nil)
