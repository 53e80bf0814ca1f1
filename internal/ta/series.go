package ta

import (
	"sort"
	"time"

	"trendforge/internal/types"
)

// Series is an ascending, de-duplicated price series. It is never mutated after BuildSeries.
type Series struct {
	points []types.PricePoint
}

// BuildSeries orders raw provider pairs by timestamp.
// Duplicate timestamps keep the value seen last in the input.
func BuildSeries(raw []types.RawPrice) Series {
	if len(raw) == 0 {
		return Series{}
	}
	sorted := make([]types.RawPrice, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TimestampMs < sorted[j].TimestampMs })

	points := make([]types.PricePoint, 0, len(sorted))
	for i, r := range sorted {
		if i+1 < len(sorted) && sorted[i+1].TimestampMs == r.TimestampMs {
			continue
		}
		points = append(points, types.PricePoint{
			Time:  time.UnixMilli(r.TimestampMs).UTC(),
			Price: r.Price,
		})
	}
	return Series{points: points}
}

func (s Series) Len() int    { return len(s.points) }
func (s Series) Empty() bool { return len(s.points) == 0 }

func (s Series) At(i int) types.PricePoint { return s.points[i] }

// Points returns a copy of the underlying points
func (s Series) Points() []types.PricePoint {
	out := make([]types.PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

func (s Series) Prices() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Price
	}
	return out
}

// Pairs renders the series as [timestamp-ms, price] pairs
func (s Series) Pairs() [][2]float64 {
	out := make([][2]float64, len(s.points))
	for i, p := range s.points {
		out[i] = [2]float64{float64(p.Time.UnixMilli()), p.Price}
	}
	return out
}
