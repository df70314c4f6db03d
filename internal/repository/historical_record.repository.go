package repository

import (
	"commodityforecast/internal/domain"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

//go:generate mockgen -source=historical_record.repository.go -destination=mocks/mock_historical_record.repository.go

// HistoricalRecordRepository is the read-only store of daily commodity
// observations. it is built once at startup and every read hands out
// a copy, so callers are free to sort or modify what they get back
type HistoricalRecordRepository interface {
	List() []domain.HistoricalRecord
	ListByCommodity(commodity string) ([]domain.HistoricalRecord, error)
	ListCommodities() []string
	LatestDate(commodity string) (time.Time, error)
	Version() string
}

type historicalRecordRepositoryHandler struct {
	records     []domain.HistoricalRecord
	byCommodity map[string][]int
	commodities []string
	latest      map[string]time.Time
	version     string
}

func NewHistoricalRecordRepository(records []domain.HistoricalRecord) (HistoricalRecordRepository, error) {
	h := &historicalRecordRepositoryHandler{
		records:     make([]domain.HistoricalRecord, len(records)),
		byCommodity: map[string][]int{},
		commodities: []string{},
		latest:      map[string]time.Time{},
	}
	copy(h.records, records)

	digest := xxhash.New()
	buf := make([]byte, 0, 64)

	for i, r := range h.records {
		if r.Commodity == "" {
			return nil, fmt.Errorf("%w: record %d has no commodity", domain.ErrValidation, i)
		}
		if r.Date.IsZero() {
			return nil, fmt.Errorf("%w: record %d (%s) has no date", domain.ErrValidation, i, r.Commodity)
		}

		if _, ok := h.byCommodity[r.Commodity]; !ok {
			h.commodities = append(h.commodities, r.Commodity)
		}
		h.byCommodity[r.Commodity] = append(h.byCommodity[r.Commodity], i)
		if r.Date.After(h.latest[r.Commodity]) {
			h.latest[r.Commodity] = r.Date
		}

		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(r.Date.Unix()))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Price))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Volume))
		buf = append(buf, r.Commodity...)
		buf = append(buf, 0)
		digest.Write(buf)
	}

	h.version = fmt.Sprintf("%016x", digest.Sum64())

	return h, nil
}

func (h historicalRecordRepositoryHandler) List() []domain.HistoricalRecord {
	out := make([]domain.HistoricalRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ListByCommodity returns the rows whose commodity matches exactly, in
// load order
func (h historicalRecordRepositoryHandler) ListByCommodity(commodity string) ([]domain.HistoricalRecord, error) {
	indices, ok := h.byCommodity[commodity]
	if !ok {
		return nil, fmt.Errorf("%w: no historical records for commodity %q", domain.ErrNotFound, commodity)
	}
	out := make([]domain.HistoricalRecord, 0, len(indices))
	for _, i := range indices {
		out = append(out, h.records[i])
	}
	return out, nil
}

// ListCommodities returns each commodity once, in the order it
// first appears in the dataset
func (h historicalRecordRepositoryHandler) ListCommodities() []string {
	out := make([]string, len(h.commodities))
	copy(out, h.commodities)
	return out
}

func (h historicalRecordRepositoryHandler) LatestDate(commodity string) (time.Time, error) {
	t, ok := h.latest[commodity]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no historical records for commodity %q", domain.ErrNotFound, commodity)
	}
	return t, nil
}

func (h historicalRecordRepositoryHandler) Version() string {
	return h.version
}
