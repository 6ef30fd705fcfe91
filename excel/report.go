package excel

import (
	"errors"
	"unicode/utf8"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"

	"kastelo.dev/secop2"
)

const (
	sheetName   = "Datos SECOP2"
	bannerText  = "Sociedad Colombiana de Consultoria SAS"
	bannerSpan  = 10
	widthMargin = 2
)

var ErrNoColumns = errors.New("table has no columns")

// ReportXLSX renders the table as a single sheet workbook: a merged banner
// on row 1, column headers on row 2, one row per record below, a banded
// table region over headers and data, and columns sized to their content.
// A table with columns but no rows renders a header-only sheet.
func ReportXLSX(table *secop2.Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, ErrNoColumns
	}

	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/secop2",
		Company:     "Sociedad Colombiana de Consultoria SAS",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, sheetName)
	sheet = sheetName

	if err := writeBanner(xlsx, sheet, len(table.Columns)); err != nil {
		return nil, err
	}
	if err := writeRows(xlsx, sheet, table); err != nil {
		return nil, err
	}
	if err := addDataTable(xlsx, sheet, table); err != nil {
		return nil, err
	}
	if err := sizeColumns(xlsx, sheet, table); err != nil {
		return nil, err
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBanner(xlsx *excelize.File, sheet string, cols int) error {
	if cols > bannerSpan {
		cols = bannerSpan
	}
	topRight, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}

	if err := xlsx.SetCellValue(sheet, "A1", bannerText); err != nil {
		return err
	}
	if err := xlsx.MergeCell(sheet, "A1", topRight); err != nil {
		return err
	}

	style, err := xlsx.NewStyle(mergeStyles(bannerFont(), bannerFill(), centered()))
	if err != nil {
		return err
	}
	if err := xlsx.SetCellStyle(sheet, "A1", topRight, style); err != nil {
		return err
	}
	return xlsx.SetRowHeight(sheet, 1, 30)
}

func writeRows(xlsx *excelize.File, sheet string, table *secop2.Table) error {
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := xlsx.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		start, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := xlsx.SetSheetRow(sheet, start, &cells); err != nil {
			return err
		}
	}
	return nil
}

func addDataTable(xlsx *excelize.File, sheet string, table *secop2.Table) error {
	bottomRight, err := excelize.CoordinatesToCellName(len(table.Columns), len(table.Rows)+2)
	if err != nil {
		return err
	}
	stripes := true
	return xlsx.AddTable(sheet, &excelize.Table{
		Range:             "A2:" + bottomRight,
		Name:              "TablaDatos",
		StyleName:         "TableStyleMedium9",
		ShowFirstColumn:   false,
		ShowLastColumn:    false,
		ShowRowStripes:    &stripes,
		ShowColumnStripes: false,
	})
}

// sizeColumns sets each column width to its longest cell in characters,
// header included but banner excluded, plus a margin. Excelize caps column
// widths at 255.
func sizeColumns(xlsx *excelize.File, sheet string, table *secop2.Table) error {
	for i, col := range table.Columns {
		longest := utf8.RuneCountInString(col)
		for _, row := range table.Rows {
			if i < len(row) {
				if n := utf8.RuneCountInString(row[i]); n > longest {
					longest = n
				}
			}
		}
		width := float64(longest + widthMargin)
		if width > excelize.MaxColumnWidth {
			width = excelize.MaxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := xlsx.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func bannerFont() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  16,
			Color: "#003366",
		},
	}
}

func bannerFill() *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DDEBF7"},
			Pattern: 1,
		},
	}
}

func centered() *excelize.Style {
	return &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	}
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
