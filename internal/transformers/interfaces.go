package transformers

import (
	"geocortex/internal/models"
)

// RecordTransformer turns an untyped input row into a canonical record.
type RecordTransformer interface {
	Normalize(row models.RawRow) (*models.PropertyRecord, error)
}
