package refdata

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names in the combined historical contract dataset
const (
	colRegion           = "시도"
	colSeniorLien       = "선순위"
	colStartMonth       = "보증시작월"
	colNetMigrationRate = "순이동률(%)"
	colUnemploymentRate = "보증완료월_실업률"
)

// loadCombined reads the combined historical contract dataset and builds two
// lookups from it: the mean senior-lien amount per region, and the economic
// indicators (net migration rate, unemployment rate) per (region, month).
func loadCombined(path string) (map[string]float64, map[RegionMonth]EconIndicators, error) {
	reader, closer, err := openCP949CSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer closer.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIdx := headerIndex(header)
	for _, col := range []string{colRegion, colSeniorLien, colStartMonth, colNetMigrationRate, colUnemploymentRate} {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	lienSums := make(map[string]float64)
	lienCounts := make(map[string]int)
	econ := make(map[RegionMonth]EconIndicators)

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		region := strings.TrimSpace(record[colIdx[colRegion]])
		if region == "" {
			continue
		}

		lienSums[region] += parseLienAmount(record[colIdx[colSeniorLien]])
		lienCounts[region]++

		month, err := strconv.Atoi(strings.TrimSpace(record[colIdx[colStartMonth]]))
		if err != nil {
			continue
		}
		key := RegionMonth{Region: region, Month: month}
		if _, ok := econ[key]; ok {
			// duplicate (region, month) rows carry near-identical aggregates; first write wins
			continue
		}
		migration, errM := strconv.ParseFloat(strings.TrimSpace(record[colIdx[colNetMigrationRate]]), 64)
		unemployment, errU := strconv.ParseFloat(strings.TrimSpace(record[colIdx[colUnemploymentRate]]), 64)
		if errM != nil || errU != nil {
			continue
		}
		econ[key] = EconIndicators{
			NetMigrationRate: migration,
			UnemploymentRate: unemployment,
		}
	}

	avgLien := make(map[string]float64, len(lienSums))
	for region, sum := range lienSums {
		avgLien[region] = sum / float64(lienCounts[region])
	}

	return avgLien, econ, nil
}

// parseLienAmount coerces a raw senior-lien cell to a number. The source data
// mixes plain numbers with thousands-separator text; unparsable values count as 0.
func parseLienAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
