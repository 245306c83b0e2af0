package document

import (
	"fmt"
	"time"

	"school-backend/internal/models"
)

// BillData is everything a fee bill renders. The renderer never mutates it.
type BillData struct {
	School     SchoolInfo
	Student    *models.Student
	BillNumber string
	Records    []*models.FeeRecord
}

const billNote = "This is a computer-generated fee bill and does not require a signature. " +
	"Please settle the balance before the due date to avoid a late fine."

// RenderBill lays out a landscape fee bill for one student's record set:
// header band, student/bill info block, Total/Paid/Balance cards, a fee-type
// summary table (multi-record bills only) and the per-record components
// table. Output is byte-identical for identical input and a fixed now.
func RenderBill(data *BillData, now time.Time) ([]byte, error) {
	if data.Student == nil {
		return nil, fmt.Errorf("bill requires a student")
	}

	d := newDoc("L", billNote, now)
	d.headerBand(data.School, "FEE BILL", data.BillNumber)

	records := sortRecords(data.Records)

	var total, paid float64
	for _, rec := range records {
		total += rec.TotalAmount
		paid += rec.AmountPaid
	}
	balance := total - paid
	if balance < 0 {
		balance = 0
	}

	academicYear := ""
	if len(records) > 0 {
		academicYear = records[0].AcademicYear
	}
	d.infoBlock(
		[]kv{
			{"Student:", data.Student.Name},
			{"Admission No:", data.Student.AdmissionNumber},
			{"Class:", data.Student.ClassName},
			{"Guardian:", data.Student.GuardianName},
		},
		[]kv{
			{"Bill No:", data.BillNumber},
			{"Bill Date:", formatDate(now)},
			{"Academic Year:", academicYear},
			{"Fee Items:", fmt.Sprintf("%d", len(records))},
		},
	)

	d.summaryCards(total, paid, balance)

	// Fee type summary only earns its space on multi-record bills
	if len(records) > 1 {
		billFeeTypeSummary(d, records)
	}

	billComponentsTable(d, records, now)

	return d.output()
}

// billFeeTypeSummary renders one row per feeType with its subtotal, cells
// tinted by the fee-type color table
func billFeeTypeSummary(d *doc, records []*models.FeeRecord) {
	d.sectionTitle("Summary by Fee Type")

	cols := []col{
		{"Fee Type", d.w * 0.34, "L"},
		{"Items", d.w * 0.14, "C"},
		{"Total", d.w * 0.18, "R"},
		{"Collected", d.w * 0.18, "R"},
		{"Balance", d.w * 0.16, "R"},
	}
	d.tableHead(cols)

	// records arrive sorted by feeType, so groups are contiguous
	type group struct {
		feeType     string
		count       int
		total, paid float64
	}
	var groups []group
	for _, rec := range records {
		if len(groups) == 0 || groups[len(groups)-1].feeType != rec.FeeType {
			groups = append(groups, group{feeType: rec.FeeType})
		}
		g := &groups[len(groups)-1]
		g.count++
		g.total += rec.TotalAmount
		g.paid += rec.AmountPaid
	}

	pdf := d.pdf
	for _, g := range groups {
		d.breakFor(6, cols)
		c := feeTypeColor(g.feeType)
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.CellFormat(cols[0].width, 6, titleCase(g.feeType), "1", 0, "L", true, 0, "")
		pdf.CellFormat(cols[1].width, 6, fmt.Sprintf("%d", g.count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[2].width, 6, formatMoney(g.total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3].width, 6, formatMoney(g.paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4].width, 6, formatMoney(g.total-g.paid), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// billComponentsTable renders the per-record table: index, type, description,
// amount, discount, fine, total, due date, status. Type and status cells take
// their background from the fixed color tables.
func billComponentsTable(d *doc, records []*models.FeeRecord, now time.Time) {
	d.sectionTitle("Fee Components")

	cols := []col{
		{"#", d.w * 0.04, "C"},
		{"Type", d.w * 0.10, "C"},
		{"Description", d.w * 0.24, "L"},
		{"Amount", d.w * 0.10, "R"},
		{"Discount", d.w * 0.09, "R"},
		{"Fine", d.w * 0.08, "R"},
		{"Total", d.w * 0.10, "R"},
		{"Due Date", d.w * 0.11, "C"},
		{"Status", d.w * 0.14, "C"},
	}
	d.tableHead(cols)

	pdf := d.pdf
	for i, rec := range records {
		d.breakFor(6, cols)

		tc := feeTypeColor(rec.FeeType)
		sc := statusColor(rec.Status(now))

		pdf.CellFormat(cols[0].width, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.SetFillColor(tc.r, tc.g, tc.b)
		pdf.CellFormat(cols[1].width, 6, titleCase(rec.FeeType), "1", 0, "C", true, 0, "")
		pdf.CellFormat(cols[2].width, 6, truncate(rec.Description, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[3].width, 6, formatMoney(rec.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4].width, 6, formatMoney(rec.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[5].width, 6, formatMoney(rec.Fine), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[6].width, 6, formatMoney(rec.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[7].width, 6, formatDate(rec.DueDate), "1", 0, "C", false, 0, "")
		pdf.SetFillColor(sc.r, sc.g, sc.b)
		pdf.CellFormat(cols[8].width, 6, titleCase(rec.Status(now)), "1", 1, "C", true, 0, "")
	}
}
