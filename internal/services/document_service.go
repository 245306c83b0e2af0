package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"school-backend/internal/archive"
	"school-backend/internal/config"
	"school-backend/internal/document"
	"school-backend/internal/metrics"
	"school-backend/internal/models"
	"school-backend/internal/timeutil"
)

// GeneratedDocument is a rendered document ready to stream to the client
type GeneratedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

type documentRecordSource interface {
	Get(ctx context.Context, id int) (*models.FeeRecord, error)
	ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error)
	List(ctx context.Context, filter models.FeeRecordFilter) ([]*models.FeeRecord, error)
	GenerateBillNumber(ctx context.Context) (string, error)
}

type studentGetter interface {
	Get(ctx context.Context, id int) (*models.Student, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*models.FeePayment, error)
}

// DocumentService fetches the data a document needs, renders it and archives
// a copy. Rendering itself is pure; all I/O happens here.
type DocumentService struct {
	Students studentGetter
	Records  documentRecordSource
	Payments paymentGetter
	Archive  *archive.Uploader
	cfg      *config.Config
}

func NewDocumentService(
	students studentGetter,
	records documentRecordSource,
	payments paymentGetter,
	uploader *archive.Uploader,
	cfg *config.Config,
) *DocumentService {
	return &DocumentService{
		Students: students,
		Records:  records,
		Payments: payments,
		Archive:  uploader,
		cfg:      cfg,
	}
}

func (s *DocumentService) school() document.SchoolInfo {
	return document.SchoolInfo{
		Name:    s.cfg.School.Name,
		Address: s.cfg.School.Address,
		Phone:   s.cfg.School.Phone,
		Email:   s.cfg.School.Email,
	}
}

// GenerateBill renders the fee bill covering every record of the student who
// owns the given fee record. The bill number is minted from its sequence at
// generation time.
func (s *DocumentService) GenerateBill(ctx context.Context, feeRecordID int, now time.Time) (*GeneratedDocument, error) {
	rec, err := s.Records.Get(ctx, feeRecordID)
	if err != nil {
		return nil, err
	}
	student, err := s.Students.Get(ctx, rec.StudentID)
	if err != nil {
		return nil, err
	}
	records, err := s.Records.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	billNumber, err := s.Records.GenerateBillNumber(ctx)
	if err != nil {
		return nil, err
	}

	data, err := document.RenderBill(&document.BillData{
		School:     s.school(),
		Student:    student,
		BillNumber: billNumber,
		Records:    records,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}

	doc := &GeneratedDocument{
		Filename:    fmt.Sprintf("FeeBill_%s_%s.pdf", fileSafe(student.Name), billNumber),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.finish(ctx, "bill", doc)
	return doc, nil
}

// GenerateReceipt renders the receipt for one recorded payment
func (s *DocumentService) GenerateReceipt(ctx context.Context, paymentID int, now time.Time) (*GeneratedDocument, error) {
	payment, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	rec, err := s.Records.Get(ctx, payment.FeeRecordID)
	if err != nil {
		return nil, err
	}
	student, err := s.Students.Get(ctx, payment.StudentID)
	if err != nil {
		return nil, err
	}

	data, err := document.RenderReceipt(&document.ReceiptData{
		School:  s.school(),
		Student: student,
		Payment: payment,
		Record:  rec,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	doc := &GeneratedDocument{
		Filename:    fmt.Sprintf("Receipt_%s_%s.pdf", fileSafe(student.Name), payment.ReceiptNumber),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.finish(ctx, "receipt", doc)
	return doc, nil
}

// GenerateReport renders the administrative report over the filtered record
// set. The stats band covers every matching record; the table is capped at
// the configured row limit with an explicit truncation note.
func (s *DocumentService) GenerateReport(ctx context.Context, filter models.FeeRecordFilter, now time.Time) (*GeneratedDocument, error) {
	records, err := s.Records.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	records = filterByStatus(records, filter.PaymentStatus, now)

	summary := Summarize(records, now, s.cfg.Fees.DefaultersTopN)

	data, err := document.RenderReport(&document.ReportData{
		School:  s.school(),
		Records: records,
		Summary: summary,
		RowCap:  s.cfg.Fees.ReportRowCap,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	doc := &GeneratedDocument{
		Filename:    fmt.Sprintf("FeeReport_%s.pdf", timeutil.ToIST(now).Format(timeutil.DateLayout)),
		ContentType: "application/pdf",
		Data:        data,
	}
	s.finish(ctx, "report", doc)
	return doc, nil
}

// GenerateReportCSV exports the complete filtered record set - no row cap, so
// it is the companion to a truncated PDF report.
func (s *DocumentService) GenerateReportCSV(ctx context.Context, filter models.FeeRecordFilter, now time.Time) (*GeneratedDocument, error) {
	records, err := s.Records.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	records = filterByStatus(records, filter.PaymentStatus, now)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"#", "Student", "Fee Type", "Description", "Amount", "Discount", "Fine",
		"Total", "Paid", "Balance", "Due Date", "Academic Year", "Status"})
	for i, rec := range records {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			rec.StudentName,
			rec.FeeType,
			rec.Description,
			fmt.Sprintf("%.2f", rec.Amount),
			fmt.Sprintf("%.2f", rec.Discount),
			fmt.Sprintf("%.2f", rec.Fine),
			fmt.Sprintf("%.2f", rec.TotalAmount),
			fmt.Sprintf("%.2f", rec.AmountPaid),
			fmt.Sprintf("%.2f", rec.BalanceDue()),
			timeutil.ToIST(rec.DueDate).Format(timeutil.DateLayout),
			rec.AcademicYear,
			rec.Status(now),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	metrics.DocumentsGeneratedTotal.WithLabelValues("report_csv").Inc()
	return &GeneratedDocument{
		Filename:    fmt.Sprintf("FeeReport_%s.csv", timeutil.ToIST(now).Format(timeutil.DateLayout)),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// finish records the generation metric and archives a copy. Archive failures
// are already logged by the uploader and never fail the request.
func (s *DocumentService) finish(ctx context.Context, kind string, doc *GeneratedDocument) {
	metrics.DocumentsGeneratedTotal.WithLabelValues(kind).Inc()
	_ = s.Archive.Store(ctx, kind, doc.Filename, doc.Data)
}

// fileSafe strips characters that don't belong in a download filename
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
}
