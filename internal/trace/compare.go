package trace

import (
	"math"

	"github.com/marcosnunesmbs/portfolio/internal/model"
)

// Unit conversions used in the summary.
const (
	microsPerMilli = 1000.0
	bytesPerKB     = 1024.0
	bytesPerMB     = 1024.0 * 1024.0
)

// PercentChange returns (before - after) / before * 100.
// There is no zero guard: a zero before yields NaN or an infinity.
func PercentChange(before, after float64) float64 {
	return (before - after) / before * 100
}

// Round2 rounds v to two decimal places. NaN and infinities pass through.
// Negative zero becomes zero.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// percent rounds the change from before to after.
func percent(before, after float64) model.Percent {
	return model.Percent(Round2(PercentChange(before, after)))
}

// Compare builds the summary of before versus after.
// Both traces must have been produced by Decode or ReadFile.
func Compare(before, after *model.Trace) *model.TraceSummary {
	beforeRange, _ := before.Range()
	afterRange, _ := after.Range()

	beforeEvents := before.EventCount()
	afterEvents := after.EventCount()

	beforeBytes := before.ResourceBytes()
	afterBytes := after.ResourceBytes()

	var sizeReduction model.Percent
	if beforeBytes > 0 {
		sizeReduction = percent(float64(beforeBytes), float64(afterBytes))
	}

	return &model.TraceSummary{
		Duration: model.DurationSummary{
			Before:      beforeRange,
			After:       afterRange,
			BeforeMs:    Round2(beforeRange / microsPerMilli),
			AfterMs:     Round2(afterRange / microsPerMilli),
			Improvement: percent(beforeRange, afterRange),
		},
		Events: model.EventSummary{
			Before:    beforeEvents,
			After:     afterEvents,
			Reduction: percent(float64(beforeEvents), float64(afterEvents)),
		},
		Resources: model.ResourceSummary{
			Before:        before.ResourceCount(),
			After:         after.ResourceCount(),
			BeforeSizeKB:  Round2(float64(beforeBytes) / bytesPerKB),
			AfterSizeKB:   Round2(float64(afterBytes) / bytesPerKB),
			SizeReduction: sizeReduction,
		},
		FileSize: model.FileSizeSummary{
			BeforeMB:  Round2(float64(before.FileSize) / bytesPerMB),
			AfterMB:   Round2(float64(after.FileSize) / bytesPerMB),
			Reduction: percent(float64(before.FileSize), float64(after.FileSize)),
		},
		Timestamps: model.TimestampSummary{
			Before: before.Metadata.StartTime,
			After:  after.Metadata.StartTime,
		},
		BeforePath:          before.Path,
		AfterPath:           after.Path,
		BeforeResourceBytes: beforeBytes,
		AfterResourceBytes:  afterBytes,
		BeforeFileBytes:     before.FileSize,
		AfterFileBytes:      after.FileSize,
		BeforeVitals:        FindWebVitals(before),
		AfterVitals:         FindWebVitals(after),
	}
}
