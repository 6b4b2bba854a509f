package refdata

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Reference dataset file names, as shipped
const (
	combinedFile     = "전세보증_데이터_최종결합본.csv"
	priceIndexFile   = "주택매매지수.csv"
	interestRateFile = "한국은행_금리.csv"
)

// RegionMonth keys lookups indexed by region code and YYYYMM month
type RegionMonth struct {
	Region string
	Month  int
}

// EconIndicators holds the macro indicators looked up per (region, month)
type EconIndicators struct {
	NetMigrationRate float64
	UnemploymentRate float64
}

// Store exposes the read-only lookup structures built from the reference
// datasets. It is built once at process startup and never mutated afterward,
// so concurrent lookups need no locking.
type Store struct {
	avgLienByRegion map[string]float64
	priceIndex      map[RegionMonth]float64
	interestRates   map[int]float64
	econIndicators  map[RegionMonth]EconIndicators
}

// NewStore builds a Store from already-prepared lookup maps. Nil maps are
// replaced with empty ones so every lookup degrades to a miss.
func NewStore(
	avgLienByRegion map[string]float64,
	priceIndex map[RegionMonth]float64,
	interestRates map[int]float64,
	econIndicators map[RegionMonth]EconIndicators,
) *Store {
	if avgLienByRegion == nil {
		avgLienByRegion = map[string]float64{}
	}
	if priceIndex == nil {
		priceIndex = map[RegionMonth]float64{}
	}
	if interestRates == nil {
		interestRates = map[int]float64{}
	}
	if econIndicators == nil {
		econIndicators = map[RegionMonth]EconIndicators{}
	}
	return &Store{
		avgLienByRegion: avgLienByRegion,
		priceIndex:      priceIndex,
		interestRates:   interestRates,
		econIndicators:  econIndicators,
	}
}

// Load builds the Store from the reference datasets under dir. It never
// fails: each dataset loads independently, and a failed load degrades the
// affected lookups to empty structures with a warning.
func Load(dir string) *Store {
	log.Info("Loading reference data for feature derivation")

	var (
		avgLien  map[string]float64
		econ     map[RegionMonth]EconIndicators
		price    map[RegionMonth]float64
		interest map[int]float64
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		avgLien, econ, err = loadCombined(filepath.Join(dir, combinedFile))
		if err != nil {
			log.Warnf("Combined contract dataset failed to load, regional lien averages and economic indicators degrade to defaults: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		price, err = loadPriceIndex(filepath.Join(dir, priceIndexFile))
		if err != nil {
			log.Warnf("House-price-index dataset failed to load, price-index lookups degrade to the default: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		interest, err = loadInterestRates(filepath.Join(dir, interestRateFile))
		if err != nil {
			log.Warnf("Interest-rate dataset failed to load, rate lookups degrade to the default: %v", err)
		}
		return nil
	})
	// sub-loads report degradation instead of returning errors
	_ = g.Wait()

	store := NewStore(avgLien, price, interest, econ)
	log.Infof("Reference data ready: %d regional lien averages, %d price-index cells, %d rate months, %d indicator cells",
		len(store.avgLienByRegion), len(store.priceIndex), len(store.interestRates), len(store.econIndicators))
	return store
}

// AvgLienByRegion returns the mean historical senior-lien amount for a region
func (s *Store) AvgLienByRegion(region string) (float64, bool) {
	v, ok := s.avgLienByRegion[region]
	return v, ok
}

// PriceIndex returns the house-price index for a region and YYYYMM month
func (s *Store) PriceIndex(region string, month int) (float64, bool) {
	v, ok := s.priceIndex[RegionMonth{Region: region, Month: month}]
	return v, ok
}

// InterestRate returns the interest rate for a YYYYMM month. The underlying
// series is forward-filled, so a miss means the month is outside the covered
// range (or the dataset failed to load).
func (s *Store) InterestRate(month int) (float64, bool) {
	v, ok := s.interestRates[month]
	return v, ok
}

// EconIndicators returns the macro indicators for a region and YYYYMM month
func (s *Store) EconIndicators(region string, month int) (EconIndicators, bool) {
	v, ok := s.econIndicators[RegionMonth{Region: region, Month: month}]
	return v, ok
}
