package refdata

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// openCP949CSV opens one of the reference datasets, which ship in the legacy
// CP949 text encoding, and returns a CSV reader producing UTF-8 records.
func openCP949CSV(path string) (*csv.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(transform.NewReader(f, korean.EUCKR.NewDecoder()))
	reader.TrimLeadingSpace = true
	return reader, f, nil
}

// headerIndex builds a trimmed column-name to index map from a header row
func headerIndex(header []string) map[string]int {
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}
	return colIdx
}
