package document

import (
	"fmt"
	"time"

	"school-backend/internal/models"
)

// ReportData carries the filtered record set and its precomputed aggregate.
// The stats band always reflects the full set even when the table is capped.
type ReportData struct {
	School  SchoolInfo
	Title   string
	Records []*models.FeeRecord
	Summary *models.FeeSummary
	RowCap  int // maximum table rows per document; 0 disables the cap
}

const reportNote = "This is a computer-generated fee collection report for administrative use."

// RenderReport lays out the landscape administrative report: header band,
// stats band over the whole set, then one row per record up to RowCap. A
// capped table says so in an explicit footer row - rows beyond the cap are
// never dropped silently.
func RenderReport(data *ReportData, now time.Time) ([]byte, error) {
	if data.Summary == nil {
		return nil, fmt.Errorf("report requires a computed summary")
	}

	title := data.Title
	if title == "" {
		title = "Fee Collection Report"
	}

	d := newDoc("L", reportNote, now)
	d.headerBand(data.School, "FEE REPORT", formatDate(now))

	reportStatsBand(d, data.Summary, len(data.Records))

	records := sortRecords(data.Records)
	capped := data.RowCap > 0 && len(records) > data.RowCap
	shown := records
	if capped {
		shown = records[:data.RowCap]
	}

	d.sectionTitle(title)
	cols := []col{
		{"#", d.w * 0.04, "C"},
		{"Student", d.w * 0.16, "L"},
		{"Type", d.w * 0.09, "C"},
		{"Description", d.w * 0.17, "L"},
		{"Total", d.w * 0.10, "R"},
		{"Paid", d.w * 0.10, "R"},
		{"Balance", d.w * 0.10, "R"},
		{"Due Date", d.w * 0.09, "C"},
		{"Year", d.w * 0.07, "C"},
		{"Status", d.w * 0.08, "C"},
	}
	d.tableHead(cols)

	pdf := d.pdf
	for i, rec := range shown {
		d.breakFor(6, cols)

		tc := feeTypeColor(rec.FeeType)
		sc := statusColor(rec.Status(now))

		pdf.CellFormat(cols[0].width, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[1].width, 6, truncate(rec.StudentName, 24), "1", 0, "L", false, 0, "")
		pdf.SetFillColor(tc.r, tc.g, tc.b)
		pdf.CellFormat(cols[2].width, 6, titleCase(rec.FeeType), "1", 0, "C", true, 0, "")
		pdf.CellFormat(cols[3].width, 6, truncate(rec.Description, 28), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[4].width, 6, formatMoney(rec.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[5].width, 6, formatMoney(rec.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[6].width, 6, formatMoney(rec.BalanceDue()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[7].width, 6, formatDate(rec.DueDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[8].width, 6, rec.AcademicYear, "1", 0, "C", false, 0, "")
		pdf.SetFillColor(sc.r, sc.g, sc.b)
		pdf.CellFormat(cols[9].width, 6, titleCase(rec.Status(now)), "1", 1, "C", true, 0, "")
	}

	if capped {
		d.breakFor(7, cols)
		pdf.SetFont("Arial", "BI", 9)
		pdf.SetFillColor(254, 243, 199)
		pdf.CellFormat(d.w, 7,
			fmt.Sprintf("Showing first %d of %d records - remaining %d records are included in the totals above. Use the CSV export for the complete set.",
				data.RowCap, len(records), len(records)-data.RowCap),
			"1", 1, "C", true, 0, "")
	}

	return d.output()
}

// reportStatsBand renders the aggregate snapshot: money totals, status
// counts and the collection rate, counted over every record in the set.
func reportStatsBand(d *doc, summary *models.FeeSummary, recordCount int) {
	pdf := d.pdf
	d.sectionTitle("Summary")

	pdf.SetFont("Arial", "", 10)
	cw := d.w / 4
	pdf.CellFormat(cw, 8, fmt.Sprintf("Records: %d", recordCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(cw, 8, fmt.Sprintf("Billed: %s", formatMoney(summary.TotalAmount)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(cw, 8, fmt.Sprintf("Collected: %s", formatMoney(summary.TotalCollected)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(cw, 8, fmt.Sprintf("Pending: %s", formatMoney(summary.TotalPending)), "1", 1, "C", false, 0, "")

	counts := summary.Counts
	statusCell := func(label string, n int, status string, last bool) {
		c := statusColor(status)
		pdf.SetFillColor(c.r, c.g, c.b)
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(d.w/5, 8, fmt.Sprintf("%s: %d", label, n), "1", ln, "C", true, 0, "")
	}
	statusCell("Paid", counts.Paid, models.StatusPaid, false)
	statusCell("Partial", counts.Partial, models.StatusPartial, false)
	statusCell("Unpaid", counts.Unpaid, models.StatusUnpaid, false)
	statusCell("Overdue", counts.Overdue, models.StatusOverdue, false)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(d.w/5, 8, fmt.Sprintf("Collection: %d%%", summary.CollectionRate), "1", 1, "C", true, 0, "")
	pdf.Ln(4)
}
