package ledger

import (
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/shared"
)

// PeriodStatus is the lifecycle state of an accounting period
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "OPEN"
	PeriodStatusClosed PeriodStatus = "CLOSED"
)

// IsValid checks if the period status is valid
func (s PeriodStatus) IsValid() bool {
	return s == PeriodStatusOpen || s == PeriodStatusClosed
}

// String returns the string representation of PeriodStatus
func (s PeriodStatus) String() string {
	return string(s)
}

// periodLayout is the label format for accounting periods, e.g. "2025-01"
const periodLayout = "2006-01"

// Period is a named accounting interval with an open/closed lifecycle.
// Posting is only permitted against open periods.
type Period struct {
	Name      string
	Status    PeriodStatus
	ClosedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPeriod creates an open period for the given label
func NewPeriod(name string) (*Period, error) {
	if err := ValidatePeriodName(name); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Period{
		Name:      name,
		Status:    PeriodStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidatePeriodName checks that the label parses as YYYY-MM
func ValidatePeriodName(name string) error {
	if _, err := time.Parse(periodLayout, name); err != nil {
		return shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Period %q is not a valid YYYY-MM label", name))
	}
	return nil
}

// PeriodOf derives the period label for a posting date
func PeriodOf(date time.Time) string {
	return date.Format(periodLayout)
}

// PeriodStart returns the first instant of the named period
func PeriodStart(name string) (time.Time, error) {
	t, err := time.Parse(periodLayout, name)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Period %q is not a valid YYYY-MM label", name))
	}
	return t, nil
}

// NextPeriod returns the label of the period following the given one
func NextPeriod(name string) (string, error) {
	t, err := time.Parse(periodLayout, name)
	if err != nil {
		return "", shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Period %q is not a valid YYYY-MM label", name))
	}
	return t.AddDate(0, 1, 0).Format(periodLayout), nil
}

// IsOpen returns true if postings are permitted against this period
func (p *Period) IsOpen() bool {
	return p.Status == PeriodStatusOpen
}

// Close marks the period closed. Fails if the period is already closed.
// Carry-forward of balances is orchestrated by the period service before
// the status flips.
func (p *Period) Close() error {
	if p.Status == PeriodStatusClosed {
		return shared.NewDomainError(shared.CodePeriodAlreadyClosed, fmt.Sprintf("Period %s is already closed", p.Name))
	}
	now := time.Now()
	p.Status = PeriodStatusClosed
	p.ClosedAt = &now
	p.UpdatedAt = now
	return nil
}

// Reopen marks the period open again. Opening balances already carried
// forward into successor periods are left untouched; a later re-close
// re-propagates them.
func (p *Period) Reopen() error {
	if p.Status == PeriodStatusOpen {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Period %s is not closed", p.Name))
	}
	p.Status = PeriodStatusOpen
	p.ClosedAt = nil
	p.UpdatedAt = time.Now()
	return nil
}
