package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"geocortex/internal/models"
	"geocortex/internal/projector"
	"geocortex/internal/services"
	"geocortex/internal/tabular"
	"geocortex/internal/transformers"
	"geocortex/pkg/api"
	"geocortex/pkg/logger"
)

var errUsage = errors.New("usage")

type cli struct {
	client  *api.Client
	records *api.RecordCache
	out     io.Writer
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "upload":
		if len(args) != 1 {
			return errUsage
		}
		return c.upload(ctx, args[0])
	case "list":
		return c.list(ctx)
	case "view":
		return c.view(ctx)
	case "browse":
		return c.browse(ctx)
	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		return c.delete(ctx, args[0])
	case "clear":
		return c.clear(ctx)
	case "geocode":
		if len(args) != 1 {
			return errUsage
		}
		return c.geocode(ctx, args[0])
	}
	return errUsage
}

// upload parses the file locally and submits rows one at a time, so a
// rejected row never hides the ones after it.
func (c *cli) upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := tabular.Read(filepath.Base(path), f)
	if err != nil {
		return err
	}
	kept, dropped := tabular.FilterAddressRows(sheet, transformers.DefaultFieldSources.Address)
	if len(dropped) > 0 {
		logger.GlobalLogger.Printf("Skipped %d rows without an address, lines %v", len(dropped), dropped)
	}

	batcher := services.NewIngestionService(c.client, transformers.NewRecordTransformer(transformers.DefaultFieldSources), func(context.Context) {
		c.records.Invalidate()
	})
	result := batcher.Ingest(ctx, kept.Rows)
	result.RenumberRejections(kept.Line)
	printBatch(c.out, filepath.Base(path), result)

	if result.Accepted == 0 {
		return nil
	}
	records, err := c.records.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh after upload: %w", err)
	}
	fmt.Fprintf(c.out, "%d records stored\n", len(records))
	return nil
}

func (c *cli) list(ctx context.Context) error {
	records, err := c.records.Records(ctx)
	if err != nil {
		return err
	}
	printRows(c.out, projector.Project(records).Rows)
	return nil
}

func (c *cli) view(ctx context.Context) error {
	records, err := c.records.Records(ctx)
	if err != nil {
		return err
	}
	view := projector.Project(records)
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Markers  []projector.Marker  `json:"markers"`
		Viewport *projector.Viewport `json:"viewport"`
	}{view.Markers, view.Viewport})
}

func (c *cli) delete(ctx context.Context, id string) error {
	n, err := c.records.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %d\n", n)
	return nil
}

func (c *cli) clear(ctx context.Context) error {
	if err := c.records.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "all records deleted")
	return nil
}

func (c *cli) geocode(ctx context.Context, id string) error {
	result, err := c.client.Geocode(ctx, id)
	if err != nil {
		return err
	}
	printGeocode(c.out, result)
	return nil
}

func (c *cli) detail(ctx context.Context, id string) (*projector.Detail, error) {
	rec, err := c.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return projector.DetailOf(rec), nil
}

var _ services.RecordSink = (*api.Client)(nil)

func recordIDs(records []*models.PropertyRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
