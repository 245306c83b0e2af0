package document

import (
	"fmt"
	"time"

	"school-backend/internal/models"
)

// ReceiptData carries the single payment a receipt certifies, alongside the
// fee record it settled against.
type ReceiptData struct {
	School  SchoolInfo
	Student *models.Student
	Payment *models.FeePayment
	Record  *models.FeeRecord
}

const receiptNote = "This is a computer-generated payment receipt and does not require a signature. " +
	"Please retain it for your records."

// RenderReceipt lays out a portrait receipt: header band, student/receipt
// info block, a single payment-details row and the record's position after
// the payment.
func RenderReceipt(data *ReceiptData, now time.Time) ([]byte, error) {
	if data.Student == nil || data.Payment == nil || data.Record == nil {
		return nil, fmt.Errorf("receipt requires student, payment and fee record")
	}

	d := newDoc("P", receiptNote, now)
	d.headerBand(data.School, "PAYMENT RECEIPT", data.Payment.ReceiptNumber)

	d.infoBlock(
		[]kv{
			{"Student:", data.Student.Name},
			{"Admission No:", data.Student.AdmissionNumber},
			{"Class:", data.Student.ClassName},
			{"Guardian:", data.Student.GuardianName},
		},
		[]kv{
			{"Receipt No:", data.Payment.ReceiptNumber},
			{"Payment Date:", formatDate(data.Payment.CreatedAt)},
			{"Academic Year:", data.Record.AcademicYear},
			{"Recorded By:", titleCase(data.Payment.PaidBy)},
		},
	)

	d.sectionTitle("Payment Details")
	cols := []col{
		{"Fee Type", d.w * 0.16, "C"},
		{"Description", d.w * 0.26, "L"},
		{"Method", d.w * 0.14, "C"},
		{"Reference", d.w * 0.18, "C"},
		{"Amount Paid", d.w * 0.26, "R"},
	}
	d.tableHead(cols)

	pdf := d.pdf
	tc := feeTypeColor(data.Record.FeeType)
	ref := data.Payment.TransactionRef
	if ref == "" {
		ref = "-"
	}
	pdf.SetFillColor(tc.r, tc.g, tc.b)
	pdf.CellFormat(cols[0].width, 7, titleCase(data.Record.FeeType), "1", 0, "C", true, 0, "")
	pdf.CellFormat(cols[1].width, 7, truncate(data.Record.Description, 42), "1", 0, "L", false, 0, "")
	pdf.CellFormat(cols[2].width, 7, titleCase(data.Payment.PaymentMethod), "1", 0, "C", false, 0, "")
	pdf.CellFormat(cols[3].width, 7, truncate(ref, 26), "1", 0, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(cols[4].width, 7, formatMoney(data.Payment.Amount), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	d.sectionTitle("Fee Record Position")
	d.summaryCards(data.Record.TotalAmount, data.Record.AmountPaid, data.Record.BalanceDue())

	status := data.Record.Status(now)
	sc := statusColor(status)
	pdf.SetFillColor(sc.r, sc.g, sc.b)
	pdf.SetFont("Arial", "B", 12)
	label := fmt.Sprintf("Status after payment: %s", titleCase(status))
	if status == models.StatusPaid {
		label = "FULLY PAID - thank you"
	}
	pdf.CellFormat(d.w, 10, label, "1", 1, "C", true, 0, "")

	if data.Payment.Remarks != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(d.w, 6, fmt.Sprintf("Remarks: %s", truncate(data.Payment.Remarks, 110)), "", 1, "L", false, 0, "")
	}

	return d.output()
}
