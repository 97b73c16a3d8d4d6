package vein

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TileGenerator is the part of Generator that batch generation drives.
type TileGenerator interface {
	Generate(originX, originZ, width, height int, flags Flags, thresholds []float64) ([]ARGB, error)
	GenerateDiffuse(originX, originZ int, opts DiffuseOptions) ([]ARGB, error)
}

// TileRequest describes one tile. When Diffuse is set the tile is produced by GenerateDiffuse
// and Width, Height, Flags and Thresholds are ignored.
type TileRequest struct {
	OriginX    int
	OriginZ    int
	Width      int
	Height     int
	Flags      Flags
	Thresholds []float64
	Diffuse    *DiffuseOptions
}

func (r TileRequest) run(gen TileGenerator) ([]ARGB, error) {
	if r.Diffuse != nil {
		return gen.GenerateDiffuse(r.OriginX, r.OriginZ, *r.Diffuse)
	}
	return gen.Generate(r.OriginX, r.OriginZ, r.Width, r.Height, r.Flags, r.Thresholds)
}

// GenerateTiles produces every requested tile using at most workers goroutines
// (unbounded when workers <= 0). Results are in request order. The first failing tile or a
// cancelled context stops the batch; tiles already running are allowed to finish.
func GenerateTiles(ctx context.Context, gen TileGenerator, requests []TileRequest, workers int) ([][]ARGB, error) {
	group, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	results := make([][]ARGB, len(requests))
	for i, req := range requests {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := req.run(gen)
			if err != nil {
				return fmt.Errorf("tile %d at (%d, %d): %w", i, req.OriginX, req.OriginZ, err)
			}
			results[i] = grid
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
