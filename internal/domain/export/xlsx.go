package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Employee Data"

const (
	headerColor = "042351"
	stripeWhite = "FFFFFF"
	stripeGray  = "D3D3D3"
)

// WriteXLSX renders the rows as a styled workbook: a solid-fill header with
// bold white text, alternating pale/white shading per employee block, thin
// borders on every populated cell and an indented dependent-name column.
// The whole workbook is built in memory before writing.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheetName, "A", "O", 20); err != nil {
		return err
	}
	for col, title := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(ColumnCount, 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, styles.header); err != nil {
		return err
	}

	for i, row := range rows {
		rowNum := i + 2
		for col, value := range row.Cells {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}

		if row.Kind == RowBlank {
			continue
		}

		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		last, _ := excelize.CoordinatesToCellName(ColumnCount, rowNum)
		if err := f.SetCellStyle(sheetName, first, last, styles.body(row.Block)); err != nil {
			return err
		}
		if row.Kind == RowDependent {
			nameCell, _ := excelize.CoordinatesToCellName(3, rowNum)
			if err := f.SetCellStyle(sheetName, nameCell, nameCell, styles.dependentName(row.Block)); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

type sheetStyles struct {
	header        int
	whiteCell     int
	grayCell      int
	whiteIndented int
	grayIndented  int
}

func (s sheetStyles) body(block int) int {
	if block%2 == 0 {
		return s.grayCell
	}
	return s.whiteCell
}

func (s sheetStyles) dependentName(block int) int {
	if block%2 == 0 {
		return s.grayIndented
	}
	return s.whiteIndented
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var styles sheetStyles
	var err error

	styles.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: stripeWhite},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles, err
	}

	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	styles.whiteCell, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{stripeWhite}, Pattern: 1},
		Border: thin,
	})
	if err != nil {
		return styles, err
	}
	styles.grayCell, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{stripeGray}, Pattern: 1},
		Border: thin,
	})
	if err != nil {
		return styles, err
	}
	styles.whiteIndented, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{stripeWhite}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Indent: 1},
	})
	if err != nil {
		return styles, err
	}
	styles.grayIndented, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{stripeGray}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Indent: 1},
	})
	return styles, err
}
