package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
)

func TestTranslateCategories(t *testing.T) {
	translator := NewErrorTranslator()

	tests := []struct {
		name     string
		raw      string
		expected payroll.ErrorCategory
	}{
		{"missing compensation", "employee has no active compensation", payroll.CategoryMissingCompensation},
		{"date format", `parsing time "2024-13-45" as "2006-01-02"`, payroll.CategoryDateFormat},
		{"attendance issue", "no attendance summary for period 2024-03", payroll.CategoryAttendanceDataIssue},
		{"missing reference", "work calendar not found", payroll.CategoryMissingReferenceData},
		{"null field", "null value in column \"bank_account_number\" violates not-null constraint", payroll.CategoryNullRequiredField},
		{"calculation", "decimal division by zero", payroll.CategoryCalculationError},
		{"fallback", "something completely unexpected happened", payroll.CategoryGeneral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := translator.Translate(tc.raw, "emp-1", "Jane Smith")
			assert.Equal(t, tc.expected, record.Category)
			assert.Equal(t, tc.raw, record.RawMessage, "raw detail must be preserved")
			assert.NotEmpty(t, record.Title)
			assert.NotEmpty(t, record.Message)
		})
	}
}

func TestTranslateCompensationBeforeReferenceData(t *testing.T) {
	translator := NewErrorTranslator()

	// "no active compensation found" matches both the compensation and
	// the not-found patterns; the compensation rule must win.
	record := translator.Translate("no active compensation found for employee", "emp-1", "")
	assert.Equal(t, payroll.CategoryMissingCompensation, record.Category)
}

func TestTranslateFallsBackToEmployeeID(t *testing.T) {
	translator := NewErrorTranslator()

	record := translator.Translate("boom", "emp-42", "")
	assert.Contains(t, record.Message, "employee emp-42")
}

func TestSummarizeGroupsByCategory(t *testing.T) {
	translator := NewErrorTranslator()

	records := []payroll.ErrorRecord{
		translator.Translate("no active compensation", "emp-1", "Alice"),
		translator.Translate("no active compensation", "emp-2", "Bob"),
		translator.Translate("work calendar not found", "emp-3", "Carol"),
	}

	report := translator.Summarize(records)

	assert.Equal(t, 3, report.Total)
	assert.Len(t, report.Groups, 2)
	assert.Equal(t, payroll.CategoryMissingCompensation, report.Groups[0].Category)
	assert.Equal(t, 2, report.Groups[0].Count)
	assert.Equal(t, []string{"Alice", "Bob"}, report.Groups[0].Employees)
	assert.Equal(t, payroll.CategoryMissingReferenceData, report.Groups[1].Category)
	assert.Contains(t, report.Summary, "3 employee(s) failed processing.")
	assert.Contains(t, report.Summary, "Alice, Bob")
	assert.Len(t, report.Errors, 3)
}

func TestSummarizeEmpty(t *testing.T) {
	translator := NewErrorTranslator()

	report := translator.Summarize(nil)

	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Groups)
}
