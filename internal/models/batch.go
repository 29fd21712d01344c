package models

// RejectionReason classifies why a batch row did not reach the store.
type RejectionReason string

const (
	ReasonMissingAddress   RejectionReason = "MissingAddress"
	ReasonStoreUnavailable RejectionReason = "StoreUnavailable"
	ReasonRateLimited      RejectionReason = "RateLimited"
	ReasonCancelled        RejectionReason = "Cancelled"
)

// Rejection attributes a failure to a 1-based input row.
type Rejection struct {
	Row     int             `json:"row"`
	Reason  RejectionReason `json:"reason"`
	Message string          `json:"message,omitempty"`
}

// BatchResult is the partial-success report of one ingestion run.
type BatchResult struct {
	BatchID  string      `json:"batchId"`
	Accepted int         `json:"accepted"`
	IDs      []string    `json:"ids"`
	Rejected []Rejection `json:"rejected"`
}

// NewBatchResult returns an empty report with non-nil slices.
func NewBatchResult(batchID string) *BatchResult {
	return &BatchResult{
		BatchID:  batchID,
		IDs:      []string{},
		Rejected: []Rejection{},
	}
}

// UploadResult is the body of POST /api/address/upload. Row numbers in
// DroppedRows and Result.Rejected are file lines, the header being line 1.
type UploadResult struct {
	Filename    string       `json:"filename"`
	Rows        int          `json:"rows"`
	Dropped     int          `json:"dropped"`
	DroppedRows []int        `json:"droppedRows"`
	Result      *BatchResult `json:"result"`
}

// RenumberRejections rewrites rejection rows through line, which maps a
// 1-based batch row to its position in the source.
func (r *BatchResult) RenumberRejections(line func(row int) int) {
	for i := range r.Rejected {
		r.Rejected[i].Row = line(r.Rejected[i].Row)
	}
}
