package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestComputeTrend_InsufficientData(t *testing.T) {
	for _, points := range [][]PricePoint{
		nil,
		{},
		{{Time: 1000, Price: 100}},
	} {
		got := ComputeTrend(points)
		if got.HasData {
			t.Errorf("HasData = true for %d points", len(points))
		}
		if got.Direction != TrendNeutral {
			t.Errorf("Direction = %q, want neutral", got.Direction)
		}
		if got.PercentChange != nil {
			t.Errorf("PercentChange = %v, want nil", *got.PercentChange)
		}
		if len(got.Polyline) != 0 {
			t.Errorf("Polyline len = %d, want 0", len(got.Polyline))
		}
	}
}

func TestComputeTrend_RisingFiftyPercent(t *testing.T) {
	got := ComputeTrend([]PricePoint{
		{Time: 1000, Price: 100},
		{Time: 2000, Price: 150},
	})
	if got.Direction != TrendUp {
		t.Errorf("Direction = %q, want up", got.Direction)
	}
	if got.PercentChange == nil || math.Abs(*got.PercentChange-50) > 1e-9 {
		t.Errorf("PercentChange = %v, want 50", got.PercentChange)
	}
}

func TestComputeTrend_FallingAndNeutral(t *testing.T) {
	down := ComputeTrend([]PricePoint{{Price: 200}, {Price: 100}, {Price: 150}})
	if down.Direction != TrendDown {
		t.Errorf("Direction = %q, want down", down.Direction)
	}
	if down.PercentChange == nil || math.Abs(*down.PercentChange-(-25)) > 1e-9 {
		t.Errorf("PercentChange = %v, want -25", down.PercentChange)
	}

	// First and last equal: neutral regardless of the middle.
	flat := ComputeTrend([]PricePoint{{Price: 100}, {Price: 500}, {Price: 100}})
	if flat.Direction != TrendNeutral {
		t.Errorf("Direction = %q, want neutral", flat.Direction)
	}
}

func TestComputeTrend_ZeroFirstPriceHasNoPercentage(t *testing.T) {
	got := ComputeTrend([]PricePoint{{Price: 0}, {Price: 100}})
	if got.PercentChange != nil {
		t.Errorf("PercentChange = %v, want nil (division by zero)", *got.PercentChange)
	}
	// Direction is still well defined.
	if got.Direction != TrendUp {
		t.Errorf("Direction = %q, want up", got.Direction)
	}
}

func TestComputeTrend_PolylineGeometry(t *testing.T) {
	got := ComputeTrend([]PricePoint{
		{Price: 100}, // min → bottom of canvas
		{Price: 200}, // max → top of canvas
		{Price: 150}, // midpoint
	})
	if len(got.Polyline) != 3 {
		t.Fatalf("Polyline len = %d, want 3", len(got.Polyline))
	}
	// X spaced evenly by index, not by timestamp.
	if got.Polyline[0].X != 0 || got.Polyline[1].X != SparkWidth/2 || got.Polyline[2].X != SparkWidth {
		t.Errorf("X coords = %v", got.Polyline)
	}
	// Higher price → smaller Y (visually higher).
	if got.Polyline[0].Y != SparkHeight {
		t.Errorf("min price Y = %v, want %v", got.Polyline[0].Y, SparkHeight)
	}
	if got.Polyline[1].Y != 0 {
		t.Errorf("max price Y = %v, want 0", got.Polyline[1].Y)
	}
	if got.Polyline[2].Y != SparkHeight/2 {
		t.Errorf("mid price Y = %v, want %v", got.Polyline[2].Y, SparkHeight/2)
	}
}

func TestComputeTrend_FlatSeriesAvoidsZeroRange(t *testing.T) {
	got := ComputeTrend([]PricePoint{{Price: 42}, {Price: 42}, {Price: 42}})
	for _, c := range got.Polyline {
		if math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
			t.Fatalf("Y = %v, zero range not defended", c.Y)
		}
	}
	if got.Direction != TrendNeutral {
		t.Errorf("Direction = %q, want neutral", got.Direction)
	}
}

func TestComputeTrend_Deterministic(t *testing.T) {
	points := []PricePoint{{Price: 10}, {Price: 30}, {Price: 20}, {Price: 25}}
	a := ComputeTrend(points)
	b := ComputeTrend(points)
	if !reflect.DeepEqual(a.Polyline, b.Polyline) || a.Direction != b.Direction {
		t.Error("trend is not deterministic for identical input")
	}
	if *a.PercentChange != *b.PercentChange {
		t.Error("percentage differs across runs")
	}
}
