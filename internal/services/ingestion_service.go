package services

import (
	"context"
	"errors"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/transformers"
	"geocortex/internal/utils"
	"geocortex/pkg/logger"

	"github.com/google/uuid"
)

// RecordSink accepts one normalized record at a time and sets its ID.
type RecordSink interface {
	Insert(ctx context.Context, record *models.PropertyRecord) error
}

// IngestionService submits rows to a sink one by one, in input order, and
// reports per-row outcomes.
type IngestionService struct {
	sink       RecordSink
	trans      transformers.RecordTransformer
	afterBatch func(ctx context.Context)
}

// NewIngestionService builds a batcher. afterBatch, when set, runs once after
// every batch that accepted at least one row.
func NewIngestionService(sink RecordSink, trans transformers.RecordTransformer, afterBatch func(ctx context.Context)) *IngestionService {
	return &IngestionService{
		sink:       sink,
		trans:      trans,
		afterBatch: afterBatch,
	}
}

// Ingest never fails as a whole. Rows rejected by normalization or by the
// sink are listed with their 1-based row number. Once ctx is done no further
// inserts are issued and the remaining rows are reported as cancelled;
// earlier inserts stay in place.
func (s *IngestionService) Ingest(ctx context.Context, rows []models.RawRow) *models.BatchResult {
	result := models.NewBatchResult(uuid.NewString())
	logger.GlobalLogger.Printf("Batch %s: ingesting %d rows", result.BatchID, len(rows))

	for i, row := range rows {
		rowNum := i + 1
		if err := ctx.Err(); err != nil {
			s.reject(result, rowNum, models.ReasonCancelled, err)
			continue
		}

		record, err := s.trans.Normalize(row)
		if err != nil {
			s.reject(result, rowNum, models.ReasonMissingAddress, err)
			continue
		}

		if err := s.sink.Insert(ctx, record); err != nil {
			reason := models.ReasonStoreUnavailable
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reason = models.ReasonCancelled
			} else if errors.Is(err, apperrors.ErrMissingAddress) {
				reason = models.ReasonMissingAddress
			} else if errors.Is(err, apperrors.ErrRateLimited) {
				reason = models.ReasonRateLimited
			}
			s.reject(result, rowNum, reason, err)
			continue
		}

		result.Accepted++
		result.IDs = append(result.IDs, record.ID)
		utils.RecordIngestedRow("accepted")
		logger.GlobalLogger.Debugf("Batch %s: row %d stored as %s", result.BatchID, rowNum, record.ID)
	}

	if result.Accepted > 0 && s.afterBatch != nil {
		s.afterBatch(context.WithoutCancel(ctx))
	}
	logger.GlobalLogger.Printf("Batch %s: accepted=%d rejected=%d", result.BatchID, result.Accepted, len(result.Rejected))
	return result
}

func (s *IngestionService) reject(result *models.BatchResult, row int, reason models.RejectionReason, err error) {
	result.Rejected = append(result.Rejected, models.Rejection{
		Row:     row,
		Reason:  reason,
		Message: err.Error(),
	})
	utils.RecordIngestedRow(string(reason))
	if reason != models.ReasonCancelled {
		logger.GlobalLogger.Errorf("Batch %s: row %d rejected (%s): %v", result.BatchID, row, reason, err)
	}
}
