package document

import "school-backend/internal/models"

// rgb is a fill color for table cells and bands
type rgb struct{ r, g, b int }

// Fixed lookup tables - cell coloring is table-driven so the same record set
// always renders identically.
var (
	headerBandColor = rgb{30, 58, 95}    // dark blue institution band
	badgeColor      = rgb{245, 158, 11}  // amber document-number badge
	tableHeadColor  = rgb{200, 200, 200}
	cardPaidColor   = rgb{200, 255, 200} // light green, settled
	cardDueColor    = rgb{255, 200, 200} // light red, outstanding

	feeTypeColors = map[string]rgb{
		models.FeeTypeTuition:   {219, 234, 254},
		models.FeeTypeExam:      {237, 233, 254},
		models.FeeTypeTransport: {254, 243, 199},
		models.FeeTypeFine:      {254, 226, 226},
		models.FeeTypeLibrary:   {209, 250, 229},
		models.FeeTypeLab:       {224, 242, 254},
		models.FeeTypeAdmission: {251, 207, 232},
		models.FeeTypeSports:    {220, 252, 231},
		models.FeeTypeOther:     {229, 231, 235},
	}

	statusColors = map[string]rgb{
		models.StatusPaid:    {209, 250, 229},
		models.StatusPartial: {254, 243, 199},
		models.StatusUnpaid:  {229, 231, 235},
		models.StatusOverdue: {254, 202, 202},
	}
)

func feeTypeColor(feeType string) rgb {
	if c, ok := feeTypeColors[feeType]; ok {
		return c
	}
	return feeTypeColors[models.FeeTypeOther]
}

func statusColor(status string) rgb {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[models.StatusUnpaid]
}
