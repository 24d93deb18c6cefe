package db

import (
	"fmt"
	"testing"
	"time"
)

func TestRecordPrice_AppendsInTemporalOrder(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	d.RecordPrice("diamond", 100, now.Add(-2*time.Hour))
	d.RecordPrice("diamond", 150, now.Add(-1*time.Hour))
	d.RecordPrice("diamond", 120, now)
	d.RecordPrice("iron", 5, now) // other series untouched

	got := d.ReadPriceHistory("diamond", now)
	if len(got) != 3 {
		t.Fatalf("series len = %d, want 3", len(got))
	}
	if got[0].Price != 100 || got[1].Price != 150 || got[2].Price != 120 {
		t.Errorf("series = %+v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Time < got[i-1].Time {
			t.Fatalf("series not ordered by timestamp: %+v", got)
		}
	}
}

func TestRecordPrice_PrunesByAge(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	d.RecordPrice("diamond", 50, now.Add(-MaxAge-24*time.Hour)) // too old
	d.RecordPrice("diamond", 100, now.Add(-time.Hour))
	d.RecordPrice("diamond", 110, now)

	got := d.ReadPriceHistory("diamond", now)
	if len(got) != 2 {
		t.Fatalf("series len = %d, want 2 (stale point pruned)", len(got))
	}
	if got[0].Price != 100 {
		t.Errorf("oldest surviving price = %v, want 100", got[0].Price)
	}
}

func TestRecordPrice_CapsAtMaxPoints(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	for i := 0; i < MaxPoints+25; i++ {
		ts := now.Add(time.Duration(i-MaxPoints-25) * time.Minute)
		d.RecordPrice("diamond", float64(i), ts)
	}

	got := d.ReadPriceHistory("diamond", now)
	if len(got) != MaxPoints {
		t.Fatalf("series len = %d, want %d", len(got), MaxPoints)
	}
	// Oldest points were dropped first; the newest observation survives.
	if got[len(got)-1].Price != float64(MaxPoints+24) {
		t.Errorf("newest price = %v, want %v", got[len(got)-1].Price, float64(MaxPoints+24))
	}
	if got[0].Price != 25 {
		t.Errorf("oldest surviving price = %v, want 25", got[0].Price)
	}
}

func TestReadPriceHistory_DefensiveAgeFilter(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	// Write a point that is fresh at record time...
	d.RecordPrice("diamond", 100, now)

	// ...then read as if 31 days passed without any intervening record.
	future := now.Add(MaxAge + 24*time.Hour)
	if got := d.ReadPriceHistory("diamond", future); len(got) != 0 {
		t.Errorf("series len = %d, want 0 (read must age-filter on its own)", len(got))
	}
}

func TestReadPriceHistory_UnknownItemIsEmptyNotError(t *testing.T) {
	d := openTestDB(t)
	if got := d.ReadPriceHistory("never_seen", time.Now()); len(got) != 0 {
		t.Errorf("series len = %d, want 0", len(got))
	}
}

func TestRecordPrice_SeriesAreIndependent(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()
	for i := 0; i < 10; i++ {
		d.RecordPrice(fmt.Sprintf("item%d", i), float64(i), now)
	}
	for i := 0; i < 10; i++ {
		got := d.ReadPriceHistory(fmt.Sprintf("item%d", i), now)
		if len(got) != 1 || got[0].Price != float64(i) {
			t.Errorf("item%d series = %+v", i, got)
		}
	}
}
