package services

import (
	"context"
	"testing"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructureFields(t *testing.T) {
	valid := func() (string, string, string, string, int, float64, string) {
		return "Term 1 Tuition", models.FeeTypeTuition, "2025", models.FrequencyOneTime, 7, 5000, "2025-07-01"
	}

	name, feeType, year, freq, classID, amount, due := valid()
	parsed, err := validateStructureFields(name, feeType, year, freq, classID, amount, due)
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())

	_, err = validateStructureFields("", feeType, year, freq, classID, amount, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, "donation", year, freq, classID, amount, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, feeType, "", freq, classID, amount, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, feeType, year, "hourly", classID, amount, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, feeType, year, freq, 0, amount, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, feeType, year, freq, classID, -1, due)
	assert.Error(t, err)

	_, err = validateStructureFields(name, feeType, year, freq, classID, amount, "01/07/2025")
	assert.Error(t, err)

	// Zero amount is a legal structure (e.g. a waived fee)
	_, err = validateStructureFields(name, feeType, year, freq, classID, 0, due)
	assert.NoError(t, err)
}

func TestCreateMultiRejectsNegativeComponent(t *testing.T) {
	svc := NewFeeStructureService(nil)

	_, err := svc.CreateMulti(context.Background(), &models.MultiFeeStructureRequest{
		BaseName:      "Term 1",
		ClassID:       7,
		AcademicYear:  "2025",
		DueDate:       "2025-07-01",
		TuitionAmount: 5000,
		ExamAmount:    -100,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Exam")
}

func TestCreateMultiRejectsAllZero(t *testing.T) {
	svc := NewFeeStructureService(nil)

	_, err := svc.CreateMulti(context.Background(), &models.MultiFeeStructureRequest{
		BaseName:     "Term 1",
		ClassID:      7,
		AcademicYear: "2025",
		DueDate:      "2025-07-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one")
}
