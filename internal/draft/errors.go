package draft

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Validation outcomes, returned wrapped in *ValidationError.
	ErrMissingSelection         = errors.New("template, area and a positive quantity are required")
	ErrEmptyTargetArea          = errors.New("no beneficiaries registered in the selected area")
	ErrQuantityExceedsAvailable = errors.New("quantity exceeds the number of beneficiaries in the area")

	ErrSubmissionFailed = errors.New("bulk request submission failed")
	ErrDraftLocked      = errors.New("draft cannot be edited while committing or after commit")
	ErrNotPrepared      = errors.New("draft must be prepared before commit")
	ErrCommitInProgress = errors.New("commit already in progress")
	ErrAlreadyCommitted = errors.New("draft already committed")
	ErrInvalidPriority  = errors.New("unknown priority")
)

// ValidationError carries the outcome of Prepare together with what the
// form needs to explain it.
type ValidationError struct {
	Kind             error
	BeneficiaryCount int
	// Missing names the unset fields for ErrMissingSelection.
	Missing []string
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s (missing: %s)", e.Kind, strings.Join(e.Missing, ", "))
	case errors.Is(e.Kind, ErrQuantityExceedsAvailable):
		return fmt.Sprintf("%s (%d available)", e.Kind, e.BeneficiaryCount)
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// IsWarning reports whether err is a validation outcome the user may accept and proceed past.
func IsWarning(err error) bool {
	return errors.Is(err, ErrQuantityExceedsAvailable)
}
