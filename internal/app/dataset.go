package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/waterradar/internal/adapters/importer"
	"github.com/okian/waterradar/internal/adapters/repository"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/pkg/logger"
	"github.com/okian/waterradar/pkg/metrics"
)

// ImportResult summarizes one imported document.
type ImportResult struct {
	BatchID  string          `json:"batch_id"`
	Format   importer.Format `json:"format"`
	Accepted int             `json:"accepted"`
	Rejected int             `json:"rejected"`
	Total    int             `json:"total"`
}

// Import parses text and merges the accepted records into the dataset. On a
// whole-document failure the dataset is left unchanged and the error wraps
// importer.ErrParse.
func (s *Service) Import(ctx context.Context, format importer.Format, text string) (ImportResult, error) {
	ds, _, err := s.components()
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{BatchID: uuid.NewString()}
	start := time.Now()

	batch, err := importer.Parse(format, text)
	res.Format = batch.Format
	if err != nil {
		if errors.Is(err, importer.ErrParse) {
			metrics.RecordImportFailure(string(batch.Format))
		}
		metrics.RecordErrorByComponent("importer", "parse")
		s.logger.Warn(ctx, "import failed",
			logger.String("batchID", res.BatchID),
			logger.String("format", string(batch.Format)),
			logger.Error(err),
		)
		return res, fmt.Errorf("import %s: %w", res.BatchID, err)
	}

	total, err := ds.Merge(ctx, batch.Records)
	if err != nil {
		return res, fmt.Errorf("import %s: %w", res.BatchID, err)
	}

	res.Accepted = len(batch.Records)
	res.Rejected = batch.Rejected
	res.Total = total
	metrics.RecordImport(string(batch.Format), res.Accepted, res.Rejected)

	s.logger.Info(ctx, "import merged",
		logger.String("batchID", res.BatchID),
		logger.String("format", string(res.Format)),
		logger.Int("accepted", res.Accepted),
		logger.Int("rejected", res.Rejected),
		logger.Int("total", res.Total),
		logger.Float64("durationMs", float64(time.Since(start).Microseconds())/1000),
	)
	return res, nil
}

// Export serializes the whole dataset in format (csv or json).
func (s *Service) Export(ctx context.Context, format importer.Format) (string, error) {
	ds, _, err := s.components()
	if err != nil {
		return "", err
	}
	ws := ds.All(ctx)
	switch format {
	case importer.FormatCSV:
		return importer.ExportCSV(ws)
	case importer.FormatJSON, importer.FormatAuto:
		b, err := importer.ExportJSON(ws)
		return string(b), err
	}
	return "", fmt.Errorf("%w: %q", importer.ErrUnsupportedFormat, format)
}

// Waters lists dataset records matching f, sorted by brand name.
func (s *Service) Waters(ctx context.Context, f repository.Filter) ([]model.Water, error) {
	ds, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return ds.Find(ctx, f), nil
}

// Water returns one record by id.
func (s *Service) Water(ctx context.Context, id string) (model.Water, error) {
	ds, _, err := s.components()
	if err != nil {
		return model.Water{}, err
	}
	w, err := ds.Get(ctx, id)
	if err != nil {
		return model.Water{}, fmt.Errorf("water %q: %w", id, err)
	}
	return w, nil
}
