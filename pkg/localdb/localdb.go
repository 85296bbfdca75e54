// Package localdb reads the desktop client's on-disk input database:
// keypress frequencies, per-application input and bandwidth, and
// per-interface network totals. Everything is read-only; the client
// owns the file and keeps writing while we query.
package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"

	_ "modernc.org/sqlite"

	"gitlab.com/tinyland/lab/keypulse/pkg/period"
)

// AppStat is one application's aggregated input and traffic.
type AppStat struct {
	Name       string
	Keys       int64
	Clicks     int64
	Scrolls    int64
	DownloadMB float64
	UploadMB   float64
}

// NetworkStat is one network interface's aggregated traffic.
type NetworkStat struct {
	Interface  string
	DownloadMB float64
	UploadMB   float64
}

// DB wraps the client's SQLite input database.
type DB struct {
	conn *sql.DB
}

// Open opens the database at path in read-only mode.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", url.PathEscape(path))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open input db: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error { return d.conn.Close() }

// KeyFrequencies sums per-key press counts, optionally constrained to a
// date range. Keys come back as the client stores them (uppercase
// letters, names like "Space" and "Backspace").
func (d *DB) KeyFrequencies(ctx context.Context, r *period.DateRange) (map[string]int64, error) {
	where, args := dayFilter(r)
	query := `SELECT key, SUM(count) FROM keypress_frequency` + where + ` GROUP BY key`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query key frequencies: %w", err)
	}
	defer rows.Close()

	freq := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		freq[key] = count
	}
	return freq, rows.Err()
}

// TotalKeys sums every press in the optional range.
func (d *DB) TotalKeys(ctx context.Context, r *period.DateRange) (int64, error) {
	freq, err := d.KeyFrequencies(ctx, r)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range freq {
		total += c
	}
	return total, nil
}

// AppStats aggregates per-application input and bandwidth, merged by
// product name (falling back to the executable path) and sorted by
// keystrokes descending.
func (d *DB) AppStats(ctx context.Context, r *period.DateRange) ([]AppStat, error) {
	where, args := dayFilter(r)

	input := `SELECT COALESCE(a.product_name, i.path), SUM(i.keys), SUM(i.clicks), SUM(i.scrolls)
		FROM input_per_application i
		LEFT JOIN applications a ON i.path = a.path` + where + ` GROUP BY 1`
	rows, err := d.conn.QueryContext(ctx, input, args...)
	if err != nil {
		return nil, fmt.Errorf("query app input: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*AppStat)
	for rows.Next() {
		s := AppStat{}
		if err := rows.Scan(&s.Name, &s.Keys, &s.Clicks, &s.Scrolls); err != nil {
			return nil, err
		}
		byName[s.Name] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Traffic lives in a separate table that older client databases do
	// not have; input stats stand on their own without it.
	bandwidth := `SELECT COALESCE(a.product_name, b.path), SUM(b.download), SUM(b.upload)
		FROM application_bandwidth b
		LEFT JOIN applications a ON b.path = a.path` + where + ` GROUP BY 1`
	if brows, err := d.conn.QueryContext(ctx, bandwidth, args...); err == nil {
		defer brows.Close()
		for brows.Next() {
			var name string
			var down, up int64
			if err := brows.Scan(&name, &down, &up); err != nil {
				return nil, err
			}
			s, ok := byName[name]
			if !ok {
				s = &AppStat{Name: name}
				byName[name] = s
			}
			s.DownloadMB += float64(down) / 1024 / 1024
			s.UploadMB += float64(up) / 1024 / 1024
		}
		if err := brows.Err(); err != nil {
			return nil, err
		}
	}

	stats := make([]AppStat, 0, len(byName))
	for _, s := range byName {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Keys != stats[j].Keys {
			return stats[i].Keys > stats[j].Keys
		}
		return stats[i].Name < stats[j].Name
	})
	return stats, nil
}

// NetworkStats aggregates per-interface traffic, labeled by the
// interface description (falling back to the MAC address) and sorted by
// download descending.
func (d *DB) NetworkStats(ctx context.Context, r *period.DateRange) ([]NetworkStat, error) {
	where, args := dayFilter(r)
	query := `SELECT COALESCE(n.description, b.mac_address), SUM(b.download), SUM(b.upload)
		FROM network_interface_bandwidth b
		LEFT JOIN network_interfaces n ON b.mac_address = n.mac_address` + where + ` GROUP BY 1`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query network stats: %w", err)
	}
	defer rows.Close()

	var stats []NetworkStat
	for rows.Next() {
		var name string
		var down, up int64
		if err := rows.Scan(&name, &down, &up); err != nil {
			return nil, err
		}
		stats = append(stats, NetworkStat{
			Interface:  name,
			DownloadMB: float64(down) / 1024 / 1024,
			UploadMB:   float64(up) / 1024 / 1024,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DownloadMB != stats[j].DownloadMB {
			return stats[i].DownloadMB > stats[j].DownloadMB
		}
		return stats[i].Interface < stats[j].Interface
	})
	return stats, nil
}

// dayFilter builds the optional day-range WHERE clause shared by every
// aggregation query.
func dayFilter(r *period.DateRange) (string, []any) {
	if r == nil {
		return "", nil
	}
	n := r.Normalized()
	return ` WHERE day >= ? AND day <= ?`,
		[]any{n.Start.Format("2006-01-02"), n.End.Format("2006-01-02")}
}
