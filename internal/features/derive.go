package features

import (
	"errors"
	"fmt"

	"github.com/jselabs/leaserisk/internal/models"
	"github.com/jselabs/leaserisk/internal/refdata"
)

// ErrInvalidMonth marks a guarantee month that is not a valid YYYYMM integer
var ErrInvalidMonth = errors.New("guarantee month must be a valid YYYYMM integer")

// Fallback defaults applied on any reference lookup miss
const (
	defaultPriceIndex       = 100
	defaultInterestRate     = 3.5
	defaultNetMigrationRate = 0.0
	defaultUnemployment     = 3.0
)

// regionCodes is the trained region indicator block. 강원 is deliberately
// absent: the model was trained without an indicator for it, so 강원
// contracts carry an all-zero block.
var regionCodes = []string{
	"경기", "경남", "경북", "광주", "대구", "대전", "부산", "서울",
	"세종", "울산", "인천", "전남", "전북", "제주", "충남", "충북",
}

// metroRegions are the capital-area codes; everything else is non-metro
var metroRegions = map[string]struct{}{
	"서울": {},
	"경기": {},
	"인천": {},
}

var propertyTypes = []string{
	"다가구주택", "다세대주택", "다중주택", "단독주택",
	"아파트", "연립주택", "오피스텔", "주상복합",
}

// Derive maps one raw contract plus the reference store into the ordered
// feature vector the model scores. It is deterministic, does no I/O and
// never mutates the store. The only error is an unparsable guarantee month.
func Derive(in models.ContractInput, store *refdata.Store) (*Vector, error) {
	startYear, startMonth, err := splitMonth(in.GuaranteeStartMonth)
	if err != nil {
		return nil, err
	}
	endYear, endMonth, err := splitMonth(in.GuaranteeEndMonth)
	if err != nil {
		return nil, err
	}

	vals := make(map[string]float64, len(schema))

	vals["보증시작월"] = float64(in.GuaranteeStartMonth)
	vals["보증완료월"] = float64(in.GuaranteeEndMonth)
	vals["주택가액"] = in.HouseValue
	vals["임대보증금액"] = in.LeaseDepositAmount
	vals["선순위"] = in.SeniorLienAmount

	// guard divisor: invalid house values score against 1
	denom := in.HouseValue
	if denom <= 0 {
		denom = 1
	}

	initialLTV := (in.SeniorLienAmount + in.LeaseDepositAmount) / denom
	vals["초기LTV"] = initialLTV
	vals["계산_LTV"] = initialLTV
	vals["선순위비율"] = in.SeniorLienAmount / denom
	vals["담보여유금액"] = in.HouseValue - (in.SeniorLienAmount + in.LeaseDepositAmount)
	vals["잔여가치율"] = (in.HouseValue - in.SeniorLienAmount) / denom
	vals["보증금_대비_주택가액_비율"] = in.LeaseDepositAmount / denom
	vals["선순위_보증금_합계_비율"] = initialLTV * 100

	vals["보증시작_연도"] = float64(startYear)
	vals["보증시작_월"] = float64(startMonth)
	vals["보증시작_분기"] = float64(quarterOf(startMonth))
	vals["보증종료_연도"] = float64(endYear)
	vals["보증종료_월"] = float64(endMonth)
	vals["보증종료_분기"] = float64(quarterOf(endMonth))

	// calendar-aware month difference, scored at contract inception
	duration := (endYear-startYear)*12 + (endMonth - startMonth)
	vals["보증기간개월"] = float64(duration)
	vals["경과기간개월"] = 0
	vals["잔여기간개월"] = float64(duration)

	vals["계절구분_봄"] = oneIf(startMonth == 3 || startMonth == 4 || startMonth == 5)
	vals["계절구분_여름"] = oneIf(startMonth == 6 || startMonth == 7 || startMonth == 8)
	vals["계절구분_겨울"] = oneIf(startMonth == 12 || startMonth == 1 || startMonth == 2)

	for _, code := range regionCodes {
		vals["시도_"+code] = oneIf(code == in.Region)
	}
	_, metro := metroRegions[in.Region]
	vals["지역구분_지방"] = oneIf(!metro)

	for _, pt := range propertyTypes {
		vals["주택구분_"+pt] = oneIf(pt == in.PropertyType)
	}

	avgLien, ok := store.AvgLienByRegion(in.Region)
	if !ok || avgLien <= 0 {
		avgLien = 1
	}
	vals["지역별_선순위_평균대비_비율"] = in.SeniorLienAmount / avgLien

	// the price index is read one year before the guarantee start
	priceIndex, ok := store.PriceIndex(in.Region, (startYear-1)*100+startMonth)
	if !ok {
		priceIndex = defaultPriceIndex
	}
	vals["주택매매지수"] = priceIndex

	rate, ok := store.InterestRate(in.GuaranteeEndMonth)
	if !ok {
		rate = defaultInterestRate
	}
	vals["보증완료금리"] = rate

	econ, ok := store.EconIndicators(in.Region, in.GuaranteeStartMonth)
	if !ok {
		econ = refdata.EconIndicators{
			NetMigrationRate: defaultNetMigrationRate,
			UnemploymentRate: defaultUnemployment,
		}
	}
	vals[NormalizeName("순이동률(%)")] = econ.NetMigrationRate
	vals["보증완료월_실업률"] = econ.UnemploymentRate

	return fromValues(vals)
}

// splitMonth decomposes a YYYYMM integer into calendar year and month
func splitMonth(yyyymm int) (int, int, error) {
	year := yyyymm / 100
	month := yyyymm % 100
	if year < 1 || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidMonth, yyyymm)
	}
	return year, month, nil
}

func quarterOf(month int) int {
	return (month-1)/3 + 1
}

func oneIf(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}
