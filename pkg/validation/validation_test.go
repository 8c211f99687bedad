package validation_test

import (
	"strings"
	"testing"

	"timeslots-service/pkg/validation"
)

func TestValidateDate(t *testing.T) {
	valid := []string{"2026-01-01", "2026-12-31", "2024-02-29"}
	for _, date := range valid {
		if err := validation.ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) = %v, want nil", date, err)
		}
	}

	invalid := []string{"", "2026-13-01", "2026-02-30", "01/02/2026", "yesterday"}
	for _, date := range invalid {
		if err := validation.ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) = nil, want error", date)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	if err := validation.ValidateDateRange("2026-01-01", "2026-01-31"); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := validation.ValidateDateRange("2026-01-01", "2026-01-01"); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	if err := validation.ValidateDateRange("2026-02-01", "2026-01-01"); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestValidateName(t *testing.T) {
	if err := validation.ValidateName("Deep Work"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := validation.ValidateName("   "); err == nil {
		t.Error("blank name accepted")
	}
	if err := validation.ValidateName(strings.Repeat("x", 101)); err == nil {
		t.Error("overlong name accepted")
	}
}

func TestValidateIntervalHours(t *testing.T) {
	for _, hours := range []int{1, 2, 24} {
		if err := validation.ValidateIntervalHours(hours); err != nil {
			t.Errorf("ValidateIntervalHours(%d) = %v, want nil", hours, err)
		}
	}
	for _, hours := range []int{0, -1, 25} {
		if err := validation.ValidateIntervalHours(hours); err == nil {
			t.Errorf("ValidateIntervalHours(%d) = nil, want error", hours)
		}
	}
}
