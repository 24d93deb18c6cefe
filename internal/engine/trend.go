package engine

// PricePoint is one observed price for an item, ordered by timestamp
// ascending within a series.
type PricePoint struct {
	Time  int64   `json:"time"` // epoch milliseconds
	Price float64 `json:"price"`
}

// Sparkline canvas dimensions. Points are mapped into this fixed box;
// the front end scales it with the viewBox.
const (
	SparkWidth  = 120.0
	SparkHeight = 32.0
)

// Coord is one polyline vertex on the sparkline canvas.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trend directions.
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// Trend summarizes a price series for display. With fewer than two
// points there is no trend: Direction is neutral, PercentChange is nil
// and Polyline is empty, which the front end renders as a flat glyph.
type Trend struct {
	Direction     string   `json:"direction"`
	PercentChange *float64 `json:"percent_change"` // nil when undefined
	Polyline      []Coord  `json:"polyline,omitempty"`
	HasData       bool     `json:"has_data"`
}

// ComputeTrend derives direction, percentage change and sparkline
// coordinates from an ordered price series. Deterministic for a given
// input.
//
// Direction compares strictly the first and last points; no regression
// or smoothing. X coordinates are spaced evenly by index position, not
// by elapsed time. Y is inverted-normalized price, so a higher price
// sits visually higher on the canvas.
func ComputeTrend(points []PricePoint) Trend {
	if len(points) < 2 {
		return Trend{Direction: TrendNeutral}
	}

	min, max := points[0].Price, points[0].Price
	for _, p := range points[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	priceRange := max - min
	if priceRange == 0 {
		priceRange = 1
	}

	poly := make([]Coord, len(points))
	xStep := SparkWidth / float64(len(points)-1)
	for i, p := range points {
		poly[i] = Coord{
			X: float64(i) * xStep,
			Y: SparkHeight - (p.Price-min)/priceRange*SparkHeight,
		}
	}

	first, last := points[0].Price, points[len(points)-1].Price
	direction := TrendNeutral
	if last > first {
		direction = TrendUp
	} else if last < first {
		direction = TrendDown
	}

	// A zero first price would make the percentage infinite; signal
	// "no trend percentage" instead.
	var pct *float64
	if first != 0 {
		v := (last - first) / first * 100
		pct = &v
	}

	return Trend{
		Direction:     direction,
		PercentChange: pct,
		Polyline:      poly,
		HasData:       true,
	}
}
