package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
)

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// Table is a rendered report: one header row plus data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatXLSX:
		return ExportFormatXLSX, nil
	}
	return "", ErrUnsupportedExportFormat
}

func (f ExportFormat) ContentType() string {
	if f == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// WriteTable renders table to w in the given format.
func WriteTable(w io.Writer, format ExportFormat, table *Table) error {
	switch format {
	case ExportFormatCSV:
		return writeCSV(w, table)
	case ExportFormatXLSX:
		return writeXLSX(w, table)
	}
	return ErrUnsupportedExportFormat
}

func writeCSV(w io.Writer, table *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeXLSX(w io.Writer, table *Table) error {
	sheet := table.Sheet
	if sheet == "" {
		sheet = "Report"
	}

	file := excelize.NewFile()
	index := file.NewSheet(sheet)
	file.SetActiveSheet(index)
	if sheet != "Sheet1" {
		file.DeleteSheet("Sheet1")
	}

	for col, header := range table.Headers {
		file.SetCellValue(sheet, cellName(col, 1), header)
	}
	for i, row := range table.Rows {
		for col, value := range row {
			file.SetCellValue(sheet, cellName(col, i+2), value)
		}
	}

	return file.Write(w)
}

// cellName converts a zero-based column and one-based row to A1 notation.
func cellName(col, row int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return fmt.Sprintf("%s%d", name, row)
}
