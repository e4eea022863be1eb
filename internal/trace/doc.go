// Package trace loads browser performance-trace files and compares them.
//
// A comparison reads two traces, extracts the recording duration, the event
// count, the captured resources and the file size of each, and computes the
// percentage change (before - after) / before * 100 rounded to two decimals.
// A positive value means the "after" trace is smaller or faster.
//
// Only the resource size metric guards against a zero baseline. The other
// metrics produce NaN or an infinity when "before" is zero; callers can
// detect that with model.TraceSummary.NonFinite.
package trace
