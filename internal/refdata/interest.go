package refdata

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names in the monthly interest-rate dataset
const (
	colYear  = "연도"
	colMonth = "월"
	colRate  = "금리"
)

// loadInterestRates reads the monthly interest-rate dataset and densifies it:
// every month from January of the first observed year through December of the
// last observed year gets a value, forward-filled across gaps. Months before
// the first observation stay absent so lookups there fall back to the default.
func loadInterestRates(path string) (map[int]float64, error) {
	reader, closer, err := openCP949CSV(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIdx := headerIndex(header)
	for _, col := range []string{colYear, colMonth, colRate} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	observed := make(map[int]float64)
	minYear, maxYear := 0, 0

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		year, errY := strconv.Atoi(strings.TrimSpace(record[colIdx[colYear]]))
		month, errM := strconv.Atoi(strings.TrimSpace(record[colIdx[colMonth]]))
		rate, errR := strconv.ParseFloat(strings.TrimSpace(record[colIdx[colRate]]), 64)
		if errY != nil || errM != nil || errR != nil || month < 1 || month > 12 {
			continue
		}

		observed[year*100+month] = rate
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	if len(observed) == 0 {
		return nil, fmt.Errorf("no usable interest-rate rows in %s", path)
	}

	rates := make(map[int]float64, (maxYear-minYear+1)*12)
	var last float64
	var have bool
	for year := minYear; year <= maxYear; year++ {
		for month := 1; month <= 12; month++ {
			key := year*100 + month
			if v, ok := observed[key]; ok {
				last, have = v, true
			}
			if have {
				rates[key] = last
			}
		}
	}

	return rates, nil
}
