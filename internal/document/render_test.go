package document

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchool() SchoolInfo {
	return SchoolInfo{
		Name:    "Test High School",
		Address: "1 School Lane",
		Phone:   "+91 98765 43210",
		Email:   "office@school.test",
	}
}

func testStudent() *models.Student {
	return &models.Student{
		ID:              1,
		AdmissionNumber: "ADM-0042",
		Name:            "Asha Verma",
		ClassID:         7,
		ClassName:       "Class 7A",
		GuardianName:    "R. Verma",
	}
}

func testRecord(id int, feeType string, total, paid float64, due time.Time) *models.FeeRecord {
	return &models.FeeRecord{
		ID:           id,
		StudentID:    1,
		StudentName:  "Asha Verma",
		FeeType:      feeType,
		Description:  feeType + " fees",
		Amount:       total,
		TotalAmount:  total,
		AmountPaid:   paid,
		DueDate:      due,
		AcademicYear: "2025",
	}
}

func frozenNow() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func TestRenderBillDeterministic(t *testing.T) {
	now := frozenNow()
	due := now.AddDate(0, 1, 0)
	data := &BillData{
		School:     testSchool(),
		Student:    testStudent(),
		BillNumber: "BILL-000042",
		Records: []*models.FeeRecord{
			testRecord(1, models.FeeTypeTuition, 5000, 2000, due),
			testRecord(2, models.FeeTypeExam, 1000, 0, due),
			testRecord(3, models.FeeTypeTransport, 1200, 1200, due),
		},
	}

	first, err := RenderBill(data, now)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF")))

	second, err := RenderBill(data, now)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "identical input and clock must render identical bytes")
}

func TestRenderBillSortsInputWithoutMutating(t *testing.T) {
	now := frozenNow()
	due := now.AddDate(0, 1, 0)

	// Same records, opposite order
	a := &BillData{School: testSchool(), Student: testStudent(), BillNumber: "BILL-000001",
		Records: []*models.FeeRecord{
			testRecord(1, models.FeeTypeTuition, 5000, 0, due),
			testRecord(2, models.FeeTypeExam, 1000, 0, due),
		}}
	b := &BillData{School: testSchool(), Student: testStudent(), BillNumber: "BILL-000001",
		Records: []*models.FeeRecord{
			testRecord(2, models.FeeTypeExam, 1000, 0, due),
			testRecord(1, models.FeeTypeTuition, 5000, 0, due),
		}}

	outA, err := RenderBill(a, now)
	require.NoError(t, err)
	outB, err := RenderBill(b, now)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(outA, outB), "layout order is fixed by feeType/dueDate, not fetch order")

	// Caller's slice keeps its order
	assert.Equal(t, 2, b.Records[0].ID)
	assert.Equal(t, 1, b.Records[1].ID)
}

func TestRenderBillRequiresStudent(t *testing.T) {
	_, err := RenderBill(&BillData{School: testSchool()}, frozenNow())
	assert.Error(t, err)
}

func TestRenderReceiptDeterministic(t *testing.T) {
	now := frozenNow()
	rec := testRecord(1, models.FeeTypeTuition, 5000, 2000, now.AddDate(0, 1, 0))
	data := &ReceiptData{
		School:  testSchool(),
		Student: testStudent(),
		Record:  rec,
		Payment: &models.FeePayment{
			ID:            9,
			ReceiptNumber: "RCP-000009",
			FeeRecordID:   1,
			StudentID:     1,
			Amount:        2000,
			PaymentMethod: models.MethodUPI,
			PaidBy:        models.PaidByParent,
			Status:        models.PaymentSuccess,
			CreatedAt:     now,
		},
	}

	first, err := RenderReceipt(data, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF")))

	second, err := RenderReceipt(data, now)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestRenderReceiptRequiresPayment(t *testing.T) {
	_, err := RenderReceipt(&ReceiptData{School: testSchool(), Student: testStudent()}, frozenNow())
	assert.Error(t, err)
}

func TestRenderReportDeterministicAndCapped(t *testing.T) {
	now := frozenNow()
	due := now.AddDate(0, 1, 0)

	var records []*models.FeeRecord
	for i := 0; i < 30; i++ {
		records = append(records, testRecord(i+1, models.FeeTypeTuition, 5000, 0, due))
	}
	summary := &models.FeeSummary{
		TotalAmount:  150000,
		TotalPending: 150000,
		Counts:       models.StatusCounts{Unpaid: 30},
	}

	data := &ReportData{School: testSchool(), Records: records, Summary: summary, RowCap: 10}

	first, err := RenderReport(data, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF")))

	second, err := RenderReport(data, now)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))

	// A capped report is smaller than the uncapped rendering of the same set
	uncapped, err := RenderReport(&ReportData{School: testSchool(), Records: records, Summary: summary}, now)
	require.NoError(t, err)
	assert.Less(t, len(first), len(uncapped))
}

func TestRenderReportRequiresSummary(t *testing.T) {
	_, err := RenderReport(&ReportData{School: testSchool()}, frozenNow())
	assert.Error(t, err)
}

func TestRenderReportPaginates(t *testing.T) {
	now := frozenNow()
	due := now.AddDate(0, 1, 0)

	var records []*models.FeeRecord
	for i := 0; i < 120; i++ {
		r := testRecord(i+1, models.FeeTypeExam, 1000, 0, due)
		r.Description = fmt.Sprintf("Exam fee installment %d", i+1)
		records = append(records, r)
	}
	summary := &models.FeeSummary{TotalAmount: 120000, TotalPending: 120000,
		Counts: models.StatusCounts{Unpaid: 120}}

	out, err := RenderReport(&ReportData{School: testSchool(), Records: records, Summary: summary}, now)
	require.NoError(t, err)

	// 120 rows cannot fit one landscape A4 page. The count includes the
	// /Type /Pages root node, so a single-page document would yield 2.
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page")), 3)
}
