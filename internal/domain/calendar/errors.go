package calendar

import "errors"

var ErrInvalidMonth = errors.New("Month must be in YYYY-MM form")
