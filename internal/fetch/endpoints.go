package fetch

import (
	"context"
	"fmt"

	"github.com/aatrey56/hoops-draft/internal/league"
)

// LeagueDataset downloads the per-player attribute dataset and caches it at
// relPath. The body is parsed before it is written so a malformed upstream
// response never replaces a good cached copy.
func (c *Client) LeagueDataset(ctx context.Context, urlPath, relPath string, force bool) (*league.Dataset, error) {
	body, ok, err := c.cached(relPath, force)
	if err != nil {
		return nil, err
	}
	if !ok {
		if body, err = c.get(ctx, urlPath); err != nil {
			return nil, err
		}
	}
	ds, err := league.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("league dataset %s: %w", urlPath, err)
	}
	if !ok {
		if err := c.write(relPath, body); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
