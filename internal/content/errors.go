package content

import "errors"

// ErrEmptyPortfolio is returned when a data file parses but holds no entries.
var ErrEmptyPortfolio = errors.New("portfolio data file has no entries")
