package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

type countingCatalog struct {
	employeeCalls int
	serviceCalls  int
}

func (c *countingCatalog) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	c.employeeCalls++
	if id == 0 {
		return nil, fmt.Errorf("employee 0: %w", domain.ErrRecordNotFound)
	}
	return &models.Employee{ID: id, Name: "Laura"}, nil
}

func (c *countingCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	c.serviceCalls++
	return &models.Service{ID: id, DurationMinutes: 30}, nil
}

func TestCachedCatalogServesRepeatedReads(t *testing.T) {
	next := &countingCatalog{}
	cache := NewCachedCatalog(next, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		emp, err := cache.GetEmployee(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, uint(4), emp.ID)
	}
	assert.Equal(t, 1, next.employeeCalls)

	cache.ForgetEmployee(4)
	_, err := cache.GetEmployee(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, next.employeeCalls)

	_, err = cache.GetService(ctx, 2)
	require.NoError(t, err)
	_, err = cache.GetService(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, next.serviceCalls)
}

func TestCachedCatalogDoesNotCacheMisses(t *testing.T) {
	next := &countingCatalog{}
	cache := NewCachedCatalog(next, 8, time.Minute)

	_, err := cache.GetEmployee(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = cache.GetEmployee(context.Background(), 0)
	assert.Error(t, err)
	assert.Equal(t, 2, next.employeeCalls)
}
