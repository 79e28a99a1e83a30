package leave

import (
	"fmt"
	"strings"

	"github.com/leaveport/leaveport-backend-go/internal/pkg/validator"
)

const (
	minReasonLength = 5
	// maxRangeDays caps a single request at a leap year; longer spans are
	// almost certainly a typo'd year and would bloat the calendar expansion.
	maxRangeDays = 366
)

type SubmitLeaveRequestRequest struct {
	Type   LeaveType `json:"type"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Reason string    `json:"reason"`
}

func (r *SubmitLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of Vacation, Sick, Personal, Unpaid, Holiday, Maternity",
		})
	}

	fromOK := false
	if validator.IsEmpty(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "Start date is required",
		})
	} else if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a YYYY-MM-DD date",
		})
	} else {
		fromOK = true
	}

	toOK := false
	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "End date is required",
		})
	} else if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a YYYY-MM-DD date",
		})
	} else {
		toOK = true
	}

	if fromOK && toOK {
		if r.To < r.From {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "End date cannot be before start date",
			})
		} else if InclusiveDays(r.From, r.To) <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "Selected date range must include at least 1 day",
			})
		} else if InclusiveDays(r.From, r.To) > maxRangeDays {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: fmt.Sprintf("Selected date range cannot exceed %d days", maxRangeDays),
			})
		}
	}

	if len(strings.TrimSpace(r.Reason)) < minReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: fmt.Sprintf("Please provide a reason (min %d chars)", minReasonLength),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CancelLeaveRequestRequest carries the interactive confirmation the cancel
// path requires.
type CancelLeaveRequestRequest struct {
	Confirm bool `json:"confirm"`
}

func (r *CancelLeaveRequestRequest) Validate() error {
	if !r.Confirm {
		return validator.ValidationErrors{{
			Field:   "confirm",
			Message: "cancellation must be confirmed",
		}}
	}
	return nil
}

// ClearAllRequest carries the interactive confirmation the clear-all path
// requires.
type ClearAllRequest struct {
	Confirm bool `json:"confirm"`
}

func (r *ClearAllRequest) Validate() error {
	if !r.Confirm {
		return validator.ValidationErrors{{
			Field:   "confirm",
			Message: "clearing saved requests must be confirmed",
		}}
	}
	return nil
}
