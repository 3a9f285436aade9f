package domain

import "strings"

// LeaveCategory is the closed set of leave types. EMERGENCY carries no
// dedicated allotment; its balance policy is looser by design.
type LeaveCategory string

const (
	CategoryAnnual    LeaveCategory = "ANNUAL"
	CategorySick      LeaveCategory = "SICK"
	CategoryCasual    LeaveCategory = "CASUAL"
	CategoryEmergency LeaveCategory = "EMERGENCY"
)

func ParseLeaveCategory(v string) (LeaveCategory, bool) {
	switch LeaveCategory(strings.ToUpper(strings.TrimSpace(v))) {
	case CategoryAnnual:
		return CategoryAnnual, true
	case CategorySick:
		return CategorySick, true
	case CategoryCasual:
		return CategoryCasual, true
	case CategoryEmergency:
		return CategoryEmergency, true
	default:
		return "", false
	}
}

func (c LeaveCategory) Valid() bool {
	switch c {
	case CategoryAnnual, CategorySick, CategoryCasual, CategoryEmergency:
		return true
	default:
		return false
	}
}

// HasAllotment reports whether the category has its own stored allotment
// that can be debited.
func (c LeaveCategory) HasAllotment() bool {
	switch c {
	case CategoryAnnual, CategorySick, CategoryCasual:
		return true
	default:
		return false
	}
}

func (c LeaveCategory) String() string {
	return string(c)
}
