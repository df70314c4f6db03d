package repository

import (
	"commodityforecast/internal/db/models/postgres/public/model"
	. "commodityforecast/internal/db/models/postgres/public/table"
	"commodityforecast/internal/domain"
	"commodityforecast/internal/util"
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

type historicalRecordRow struct {
	Date      string `csv:"date"`
	Commodity string `csv:"commodity"`
	Price     string `csv:"price"`
	Volume    string `csv:"volume"`
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"01/02/2006",
}

func parseRecordDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return util.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// empty cells load as NaN
func parseRecordNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func LoadHistoricalRecordsFromCsv(path string) ([]domain.HistoricalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	records, err := ParseHistoricalRecordsCsv(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return records, nil
}

// ParseHistoricalRecordsCsv reads a csv with date, commodity, price and
// volume columns. other columns are ignored
func ParseHistoricalRecordsCsv(r io.Reader) ([]domain.HistoricalRecord, error) {
	rows := []historicalRecordRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: failed to read csv: %w", domain.ErrParse, err)
	}

	out := make([]domain.HistoricalRecord, 0, len(rows))
	for i, row := range rows {
		// header is line 1
		line := i + 2
		commodity := strings.TrimSpace(row.Commodity)
		if commodity == "" {
			return nil, fmt.Errorf("%w: line %d has no commodity", domain.ErrParse, line)
		}
		date, err := parseRecordDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrParse, line, err)
		}
		price, err := parseRecordNumber(row.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid price %q", domain.ErrParse, line, row.Price)
		}
		volume, err := parseRecordNumber(row.Volume)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid volume %q", domain.ErrParse, line, row.Volume)
		}

		out = append(out, domain.HistoricalRecord{
			Date:      date,
			Commodity: commodity,
			Price:     price,
			Volume:    volume,
		})
	}

	return out, nil
}

func LoadHistoricalRecordsFromDb(ctx context.Context, db *sql.DB) ([]domain.HistoricalRecord, error) {
	query := CommodityPrice.
		SELECT(CommodityPrice.AllColumns).
		ORDER_BY(
			CommodityPrice.Date.ASC(),
			CommodityPrice.Commodity.ASC(),
		)

	result := []model.CommodityPrice{}
	err := query.QueryContext(ctx, db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodity prices: %w", err)
	}

	return commodityPriceModelsToRecords(result), nil
}

func commodityPriceModelsToRecords(models []model.CommodityPrice) []domain.HistoricalRecord {
	deref := func(f *float64) float64 {
		if f == nil {
			return math.NaN()
		}
		return *f
	}

	out := make([]domain.HistoricalRecord, 0, len(models))
	for _, m := range models {
		out = append(out, domain.HistoricalRecord{
			Date:      util.Day(m.Date),
			Commodity: m.Commodity,
			Price:     deref(m.Price),
			Volume:    deref(m.Volume),
		})
	}
	return out
}
