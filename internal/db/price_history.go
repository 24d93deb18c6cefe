package db

import (
	"log"
	"time"

	"craftboard/internal/engine"
)

// Series bounds for the local price history store.
const (
	// MaxAge prunes points older than 30 days relative to the
	// observation time.
	MaxAge = 30 * 24 * time.Hour
	// MaxPoints caps each item's series; the oldest excess points are
	// dropped first.
	MaxPoints = 100
)

// RecordPrice appends one observed price point for an item and enforces
// the series bounds: append, age-prune, then cap-prune. It never fails.
// A persistence error degrades trend display only, so it is logged and
// swallowed and the dashboard keeps working without history.
func (d *DB) RecordPrice(itemID string, price float64, now time.Time) {
	tx, err := d.sql.Begin()
	if err != nil {
		log.Printf("[DB] RecordPrice begin: %v", err)
		return
	}
	defer tx.Rollback()

	nowMS := now.UnixMilli()
	if _, err := tx.Exec(
		"INSERT INTO price_history (item_id, ts, price) VALUES (?,?,?)",
		itemID, nowMS, price,
	); err != nil {
		log.Printf("[DB] RecordPrice insert: %v", err)
		return
	}

	cutoff := now.Add(-MaxAge).UnixMilli()
	tx.Exec("DELETE FROM price_history WHERE item_id=? AND ts < ?", itemID, cutoff)

	// Cap the series length, dropping oldest first. rowid breaks ties
	// between points recorded within the same millisecond.
	tx.Exec(`
		DELETE FROM price_history
		WHERE item_id=? AND rowid NOT IN (
			SELECT rowid FROM price_history
			WHERE item_id=?
			ORDER BY ts DESC, rowid DESC
			LIMIT ?
		)
	`, itemID, itemID, MaxPoints)

	if err := tx.Commit(); err != nil {
		log.Printf("[DB] RecordPrice commit: %v", err)
	}
}

// ReadPriceHistory returns the stored series for an item, oldest first.
// The age filter is applied again here rather than trusting prior
// pruning: the file may have been written by an older build or simply
// sat unused past the age bound.
func (d *DB) ReadPriceHistory(itemID string, now time.Time) []engine.PricePoint {
	cutoff := now.Add(-MaxAge).UnixMilli()
	rows, err := d.sql.Query(
		"SELECT ts, price FROM price_history WHERE item_id=? AND ts >= ? ORDER BY ts ASC, rowid ASC",
		itemID, cutoff,
	)
	if err != nil {
		log.Printf("[DB] ReadPriceHistory: %v", err)
		return nil
	}
	defer rows.Close()

	var points []engine.PricePoint
	for rows.Next() {
		var p engine.PricePoint
		if err := rows.Scan(&p.Time, &p.Price); err != nil {
			continue
		}
		points = append(points, p)
	}
	return points
}
