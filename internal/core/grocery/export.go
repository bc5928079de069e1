package grocery

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"recipe-grocery/internal/pkg/common"

	"github.com/xuri/excelize/v2"
)

// Format 匯出格式
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const exportSheet = "Grocery List"

var exportHeader = []string{
	"category", "name", "quantity", "unit",
	"metric_quantity", "metric_unit", "imperial_quantity", "imperial_unit",
	"recipes", "checked",
}

// ParseFormat 空字串預設為 xlsx
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", common.ErrUnsupportedFormat
	}
}

// ContentType 回應標頭用的 MIME 類型
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename 下載檔名
func (f Format) Filename(listID string) string {
	return fmt.Sprintf("grocery-list-%s.%s", listID, f)
}

// Export 依分類順序輸出清單項目
func (s *Service) Export(list *List, format Format, w io.Writer) error {
	rows := exportRows(list.Items)

	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return common.ErrUnsupportedFormat
	}
}

func exportRows(items []Item) [][]string {
	var rows [][]string
	for _, group := range GroupByCategory(items) {
		for _, item := range group.Items {
			row := []string{
				string(group.Category),
				item.Name,
				item.OriginalQuantity.Display(),
				string(item.OriginalUnit),
				"", "", "", "",
				strings.Join(item.RecipeIDs, ","),
				fmt.Sprintf("%t", item.Checked),
			}
			if item.MetricQuantity != nil {
				row[4], row[5] = item.MetricQuantity.Display(), string(item.MetricUnit)
			}
			if item.ImperialQuantity != nil {
				row[6], row[7] = item.ImperialQuantity.Display(), string(item.ImperialUnit)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	return f.Write(w)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
