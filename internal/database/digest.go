package database

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/crypto/blake2b"
)

// FileDigest returns the hex BLAKE2b-256 digest of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Trace paths are user-provided
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// NewRecord builds a history record for summary, hashing both trace files.
// ID and CreatedAt are left empty for SaveComparison to fill.
func NewRecord(summary *model.TraceSummary) (*model.HistoryRecord, error) {
	before, err := FileDigest(summary.BeforePath)
	if err != nil {
		return nil, err
	}
	after, err := FileDigest(summary.AfterPath)
	if err != nil {
		return nil, err
	}
	return &model.HistoryRecord{
		BeforePath:   summary.BeforePath,
		AfterPath:    summary.AfterPath,
		BeforeDigest: before,
		AfterDigest:  after,
		Summary:      summary,
	}, nil
}
