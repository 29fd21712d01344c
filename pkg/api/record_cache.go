package api

import (
	"context"
	"sync"

	"geocortex/internal/models"
)

// RecordCache is a client-side copy of the full record list. It is never
// patched: every mutation made through it drops the copy and refetches.
type RecordCache struct {
	client *Client

	mu      sync.RWMutex
	records []*models.PropertyRecord
	loaded  bool
}

func NewRecordCache(client *Client) *RecordCache {
	return &RecordCache{client: client}
}

// Records returns the cached list, fetching it on first use.
func (c *RecordCache) Records(ctx context.Context) ([]*models.PropertyRecord, error) {
	c.mu.RLock()
	if c.loaded {
		records := c.records
		c.mu.RUnlock()
		return records, nil
	}
	c.mu.RUnlock()
	return c.Refresh(ctx)
}

// Refresh refetches the whole list from the server.
func (c *RecordCache) Refresh(ctx context.Context) ([]*models.PropertyRecord, error) {
	records, err := c.client.List(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.records, c.loaded = records, true
	c.mu.Unlock()
	return records, nil
}

func (c *RecordCache) Invalidate() {
	c.mu.Lock()
	c.records, c.loaded = nil, false
	c.mu.Unlock()
}

func (c *RecordCache) Delete(ctx context.Context, id string) (int64, error) {
	n, err := c.client.Delete(ctx, id)
	c.Invalidate()
	return n, err
}

func (c *RecordCache) Clear(ctx context.Context) error {
	err := c.client.Clear(ctx)
	c.Invalidate()
	return err
}
