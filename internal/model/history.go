package model

import "time"

// HistoryRecord is a stored trace comparison.
type HistoryRecord struct {
	// ID is a random UUID assigned when the record is saved.
	ID string `json:"id"`

	// CreatedAt is when the comparison was saved, in UTC.
	CreatedAt time.Time `json:"createdAt"`

	BeforePath string `json:"beforePath"`
	AfterPath  string `json:"afterPath"`

	// BeforeDigest and AfterDigest are hex BLAKE2b-256 digests of the
	// trace files, used to tell re-recorded traces apart.
	BeforeDigest string `json:"beforeDigest"`
	AfterDigest  string `json:"afterDigest"`

	Summary *TraceSummary `json:"summary"`
}
