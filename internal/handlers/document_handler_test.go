package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school-backend/internal/config"
	"school-backend/internal/models"
	"school-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocStudents struct {
	students map[int]*models.Student
}

func (f *fakeDocStudents) Get(ctx context.Context, id int) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, errors.New("student not found")
	}
	return s, nil
}

type fakeDocRecords struct {
	records map[int]*models.FeeRecord
}

func (f *fakeDocRecords) Get(ctx context.Context, id int) (*models.FeeRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeDocRecords) ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error) {
	var out []*models.FeeRecord
	for _, rec := range f.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDocRecords) List(ctx context.Context, filter models.FeeRecordFilter) ([]*models.FeeRecord, error) {
	var out []*models.FeeRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeDocRecords) GenerateBillNumber(ctx context.Context) (string, error) {
	return "BILL-000001", nil
}

type fakeDocPayments struct {
	payments map[int]*models.FeePayment
}

func (f *fakeDocPayments) Get(ctx context.Context, id int) (*models.FeePayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

// newDocumentHandler wires the handler over two students: record 1 and
// payment 9 belong to student 1, record 2 to student 2.
func newDocumentHandler() *DocumentHandler {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	students := &fakeDocStudents{students: map[int]*models.Student{
		1: {ID: 1, AdmissionNumber: "ADM-0001", Name: "Asha Verma", ClassID: 7, ClassName: "Class 7A", GuardianName: "R. Verma"},
		2: {ID: 2, AdmissionNumber: "ADM-0002", Name: "Vikram Rao", ClassID: 7, ClassName: "Class 7A", GuardianName: "S. Rao"},
	}}
	records := &fakeDocRecords{records: map[int]*models.FeeRecord{
		1: {ID: 1, StudentID: 1, StudentName: "Asha Verma", FeeType: models.FeeTypeTuition,
			Amount: 5000, TotalAmount: 5000, AmountPaid: 2000, DueDate: due, AcademicYear: "2025"},
		2: {ID: 2, StudentID: 2, StudentName: "Vikram Rao", FeeType: models.FeeTypeTuition,
			Amount: 5000, TotalAmount: 5000, AmountPaid: 0, DueDate: due, AcademicYear: "2025"},
	}}
	payments := &fakeDocPayments{payments: map[int]*models.FeePayment{
		9: {ID: 9, ReceiptNumber: "RCP-000009", FeeRecordID: 1, StudentID: 1, Amount: 2000,
			PaymentMethod: models.MethodUPI, PaidBy: models.PaidByParent,
			Status: models.PaymentSuccess, CreatedAt: due},
	}}

	cfg := &config.Config{}
	cfg.School.Name = "Test High School"
	cfg.Fees.ReportRowCap = 500
	cfg.Fees.DefaultersTopN = 10

	return NewDocumentHandler(services.NewDocumentService(students, records, payments, nil, cfg))
}

func getReceipt(h *DocumentHandler, ctx context.Context, paymentID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/fees/receipt/"+paymentID, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"paymentId": paymentID})
	rr := httptest.NewRecorder()
	h.Receipt(rr, req)
	return rr
}

func getBill(h *DocumentHandler, ctx context.Context, recordID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/fees/"+recordID+"/bill.pdf", nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"id": recordID})
	rr := httptest.NewRecorder()
	h.Bill(rr, req)
	return rr
}

func TestReceiptStaffReadsAnyStudent(t *testing.T) {
	h := newDocumentHandler()

	rr := getReceipt(h, authedCtx(models.RoleAccountant, 0), "9")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, rr.Body.Len() > 0)
}

func TestReceiptParentReadsOwnStudent(t *testing.T) {
	h := newDocumentHandler()

	rr := getReceipt(h, authedCtx(models.RoleParent, 1), "9")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
}

func TestReceiptParentCannotReadOtherStudents(t *testing.T) {
	h := newDocumentHandler()

	// Payment 9 belongs to student 1; this parent is linked to student 2
	rr := getReceipt(h, authedCtx(models.RoleParent, 2), "9")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.NotContains(t, rr.Body.String(), "RCP-000009")
}

func TestReceiptUnknownPayment(t *testing.T) {
	h := newDocumentHandler()

	rr := getReceipt(h, authedCtx(models.RoleAccountant, 0), "404")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBillParentReadsOwnStudent(t *testing.T) {
	h := newDocumentHandler()

	rr := getBill(h, authedCtx(models.RoleParent, 1), "1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
}

func TestBillParentCannotReadOtherStudents(t *testing.T) {
	h := newDocumentHandler()

	rr := getBill(h, authedCtx(models.RoleParent, 1), "2")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestBillUnknownRecord(t *testing.T) {
	h := newDocumentHandler()

	rr := getBill(h, authedCtx(models.RoleAccountant, 0), "404")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
