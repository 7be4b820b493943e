package predictions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go-shelter-triage-board/internal/schema"
)

// DecodeCSV parses one full prediction table. The header is resolved against
// the column mapping exactly once; a configured column absent from the file
// fails fast with a MissingColumnError naming it.
func DecodeCSV(r io.Reader, m schema.Mapping) ([]PredictionRow, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read prediction table header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	if err := m.Validate(func(col string) bool {
		_, ok := index[col]
		return ok
	}); err != nil {
		return nil, 0, err
	}

	var (
		rows    []PredictionRow
		skipped int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read prediction table row: %w", err)
		}

		rec := func(col string) (string, bool) {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return "", false
			}
			return record[i], true
		}

		row, ok := RowFromRecord(rec, m)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}
