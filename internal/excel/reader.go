package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRecords reads the first sheet of a workbook, treating the first
// non-empty row as the header. Each following row becomes a record keyed by
// the lowercased header text with spaces turned into underscores; blank
// rows are skipped.
func ReadRecords(r io.Reader) ([]map[string]any, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var header []string
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, cell := range row {
				header[i] = headerKey(cell)
			}
			continue
		}
		record := make(map[string]any, len(header))
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			if value := strings.TrimSpace(row[i]); value != "" {
				record[key] = value
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func headerKey(cell string) string {
	return strings.Join(strings.Fields(strings.ToLower(cell)), "_")
}
