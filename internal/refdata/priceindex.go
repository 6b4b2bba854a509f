package refdata

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const colAdminRegion = "행정구역별"

// regionNameToCode maps the long administrative region names used by the
// house-price-index dataset to the short codes the contract data uses.
// Unmapped names are kept as-is.
var regionNameToCode = map[string]string{
	"서울특별시":   "서울",
	"부산광역시":   "부산",
	"대구광역시":   "대구",
	"인천광역시":   "인천",
	"광주광역시":   "광주",
	"대전광역시":   "대전",
	"울산광역시":   "울산",
	"세종특별자치시": "세종",
	"경기도":     "경기",
	"강원특별자치도": "강원",
	"충청북도":    "충북",
	"충청남도":    "충남",
	"전북특별자치도": "전북",
	"전라남도":    "전남",
	"경상북도":    "경북",
	"경상남도":    "경남",
	"제주특별자치도": "제주",
}

// loadPriceIndex reads the regional house-price-index dataset. Column headers
// are dotted year-month strings ("2021.03") which become integer YYYYMM keys;
// columns that do not look like a year-month are ignored.
func loadPriceIndex(path string) (map[RegionMonth]float64, error) {
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
	regionCol, ok := colIdx[colAdminRegion]
	if !ok {
		return nil, fmt.Errorf("missing required column: %s", colAdminRegion)
	}

	monthByCol := make(map[int]int)
	for i, col := range header {
		if i == regionCol {
			continue
		}
		if month, ok := parseDottedMonth(col); ok {
			monthByCol[i] = month
		}
	}

	index := make(map[RegionMonth]float64)
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

		name := strings.TrimSpace(record[regionCol])
		if name == "" {
			continue
		}
		region, ok := regionNameToCode[name]
		if !ok {
			region = name
		}

		for i, month := range monthByCol {
			if i >= len(record) {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				continue
			}
			index[RegionMonth{Region: region, Month: month}] = value
		}
	}

	return index, nil
}

// parseDottedMonth converts a "2021.03" style header into 202103
func parseDottedMonth(col string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(col), ".", "")
	if len(cleaned) != 6 {
		return 0, false
	}
	month, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return month, true
}
