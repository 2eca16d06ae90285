package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Column widths in mm, tuned so the 15 columns fit a landscape A4 page.
var pdfColWidths = [ColumnCount]float64{
	10, 18, 32, 16, 14, 16, 14, 22, 18, 16, 18, 18, 18, 32, 15,
}

// WritePDF renders the rows as a landscape roster with the same block
// structure as the other formats. Blank separator rows become vertical
// whitespace rather than empty bordered cells.
func WritePDF(w io.Writer, rows []Row) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 6.5)
		pdf.SetFillColor(4, 35, 81)
		pdf.SetTextColor(255, 255, 255)
		for col, title := range Header {
			pdf.CellFormat(pdfColWidths[col], 7, title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 6.5)
	for _, row := range rows {
		if row.Kind == RowBlank {
			pdf.Ln(2)
			continue
		}
		if row.Block%2 == 0 {
			pdf.SetFillColor(211, 211, 211)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for col, value := range row.Cells {
			align := "L"
			if col == 0 {
				align = "C"
			}
			pdf.CellFormat(pdfColWidths[col], 5, value, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
