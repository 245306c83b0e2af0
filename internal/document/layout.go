package document

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"school-backend/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// SchoolInfo is the institution identity printed on every document header
type SchoolInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

const (
	pageMargin   = 10.0
	footerHeight = 22.0
	headerBandH  = 24.0
)

// doc composes a document out of stacked blocks: each block draws at the
// current Y and the auto page break paginates long tables, with the footer
// repeated on every page.
type doc struct {
	pdf *gofpdf.Fpdf
	w   float64 // printable width
}

// newDoc starts a page in the given orientation ("P" or "L") with the
// per-page footer installed. The footer carries a fixed note and the
// generation timestamp; rendering is a pure projection, so the caller passes
// the clock in.
func newDoc(orientation, note string, now time.Time) *doc {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	// Pin the metadata timestamp to the caller's clock; otherwise two renders
	// of the same data differ in their embedded creation date
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerHeight+pageMargin)

	pageW, _ := pdf.GetPageSize()
	d := &doc{pdf: pdf, w: pageW - 2*pageMargin}

	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		y := pageH - footerHeight
		pdf.SetY(y)
		pdf.SetDrawColor(120, 120, 120)
		pdf.Line(pageMargin, y, pageMargin+d.w, y)
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(d.w, 4, note, "", 1, "L", false, 0, "")
		pdf.CellFormat(d.w/2, 4, fmt.Sprintf("Generated: %s", formatTimestamp(now)), "", 0, "L", false, 0, "")
		pdf.CellFormat(d.w/2, 4, fmt.Sprintf("Page %d", pdf.PageNo()), "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	return d
}

// headerBand draws the fixed-height colored band: institution identity on the
// left, a document-type badge with its number on the right. Shared by all
// three document kinds, parameterized only by title and number.
func (d *doc) headerBand(school SchoolInfo, title, number string) {
	pdf := d.pdf
	top := pdf.GetY()

	pdf.SetFillColor(headerBandColor.r, headerBandColor.g, headerBandColor.b)
	pdf.Rect(pageMargin, top, d.w, headerBandH, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(pageMargin+4, top+3)
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(d.w*0.6, 7, school.Name, "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.SetX(pageMargin + 4)
	pdf.CellFormat(d.w*0.6, 4, school.Address, "", 2, "L", false, 0, "")
	pdf.SetX(pageMargin + 4)
	pdf.CellFormat(d.w*0.6, 4, fmt.Sprintf("%s | %s", school.Phone, school.Email), "", 1, "L", false, 0, "")

	// Badge: document type above its unique number
	badgeW := 62.0
	badgeX := pageMargin + d.w - badgeW - 4
	pdf.SetFillColor(badgeColor.r, badgeColor.g, badgeColor.b)
	pdf.RoundedRect(badgeX, top+4, badgeW, headerBandH-8, 2, "1234", "F")
	pdf.SetXY(badgeX, top+6)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(badgeW, 6, title, "", 2, "C", false, 0, "")
	pdf.SetX(badgeX)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(badgeW, 5, number, "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(top + headerBandH + 5)
}

// kv is one row of an info block column
type kv struct{ key, value string }

// infoBlock lays out two key/value columns side by side (student identity on
// the left, document metadata on the right). Its height follows from the
// longer column so the next block never overlaps.
func (d *doc) infoBlock(left, right []kv) {
	pdf := d.pdf
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	rowH := 6.0
	top := pdf.GetY()
	colW := d.w / 2

	pdf.SetDrawColor(180, 180, 180)
	pdf.Rect(pageMargin, top, d.w, float64(rows)*rowH+4, "D")

	writeCol := func(x float64, col []kv) {
		y := top + 2
		for _, row := range col {
			pdf.SetXY(x+3, y)
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(32, rowH, row.key, "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(colW-38, rowH, row.value, "", 0, "L", false, 0, "")
			y += rowH
		}
	}
	writeCol(pageMargin, left)
	writeCol(pageMargin+colW, right)

	pdf.SetY(top + float64(rows)*rowH + 4 + 5)
}

// summaryCards draws three equal-width rounded cards (Total / Paid / Balance).
// The balance card flips color treatment on outstanding vs settled.
func (d *doc) summaryCards(total, paid, balance float64) {
	pdf := d.pdf
	top := pdf.GetY()
	gap := 4.0
	cardW := (d.w - 2*gap) / 3
	cardH := 16.0

	card := func(x float64, label, value string, fill rgb) {
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		pdf.RoundedRect(x, top, cardW, cardH, 2, "1234", "F")
		pdf.SetXY(x, top+2)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(cardW, 5, label, "", 2, "C", false, 0, "")
		pdf.SetX(x)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(cardW, 7, value, "", 1, "C", false, 0, "")
	}

	balanceFill := cardPaidColor
	if balance > 0 {
		balanceFill = cardDueColor
	}
	card(pageMargin, "Total Amount", formatMoney(total), rgb{240, 240, 240})
	card(pageMargin+cardW+gap, "Amount Paid", formatMoney(paid), cardPaidColor)
	card(pageMargin+2*(cardW+gap), "Balance Due", formatMoney(balance), balanceFill)

	pdf.SetY(top + cardH + 6)
}

// sectionTitle draws a filled section heading bar
func (d *doc) sectionTitle(title string) {
	pdf := d.pdf
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(d.w, 7, title, "1", 1, "L", true, 0, "")
}

// col is one column of a table: header label, width, alignment
type col struct {
	label string
	width float64
	align string
}

// tableHead draws the gray header row. Row drawers call it again after an
// auto page break so every page carries its column labels.
func (d *doc) tableHead(cols []col) {
	pdf := d.pdf
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(tableHeadColor.r, tableHeadColor.g, tableHeadColor.b)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.label, "1", ln, "C", true, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
}

// breakFor starts a new page and re-draws the table header when the next row
// would cross into the footer zone
func (d *doc) breakFor(rowH float64, cols []col) {
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+rowH > pageH-footerHeight-pageMargin {
		d.pdf.AddPage()
		d.tableHead(cols)
	}
}

// output finalizes the document into bytes
func (d *doc) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sortRecords orders records by feeType then due date then id so the same
// record set always lays out identically regardless of fetch order. The
// caller's slice is left untouched.
func sortRecords(records []*models.FeeRecord) []*models.FeeRecord {
	sorted := make([]*models.FeeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FeeType != sorted[j].FeeType {
			return sorted[i].FeeType < sorted[j].FeeType
		}
		if !sorted[i].DueDate.Equal(sorted[j].DueDate) {
			return sorted[i].DueDate.Before(sorted[j].DueDate)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
