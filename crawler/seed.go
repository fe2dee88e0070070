package crawler

import (
	"context"
)

// SeedByLocation bootstraps the frontier with the owners of recent media
// near the coordinate, up to remaining capacity.
func (c *Crawler) SeedByLocation(ctx context.Context, latitude float64, longitude float64) error {
	items, err := c.client.SearchMedia(ctx, latitude, longitude)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(items))
	for i := range items {
		id, err := items[i].User.NumericID()
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	c.frontier.Extend(ids, len(ids))
	c.log.Info().Int("seeded", c.frontier.Len()).Msg("seeded by location")
	return nil
}

// SeedFromStore bootstraps the frontier with a random sample of accounts
// already known to the store.
func (c *Crawler) SeedFromStore() error {
	ids, err := c.store.RandomAccountIDs(c.frontier.Remaining())
	if err != nil {
		return err
	}
	c.frontier.Extend(ids, len(ids))
	c.log.Info().Int("seeded", c.frontier.Len()).Msg("seeded from store")
	return nil
}
