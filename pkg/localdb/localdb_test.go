package localdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gitlab.com/tinyland/lab/keypulse/pkg/period"
)

// seedDB writes a small keypress_frequency table the way the desktop
// client lays it out.
func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	defer conn.Close()

	stmts := []string{
		`CREATE TABLE keypress_frequency (day TEXT, key TEXT, count INTEGER)`,
		`INSERT INTO keypress_frequency VALUES ('2026-08-20', 'E', 100)`,
		`INSERT INTO keypress_frequency VALUES ('2026-08-21', 'E', 50)`,
		`INSERT INTO keypress_frequency VALUES ('2026-08-21', 'T', 40)`,
		`INSERT INTO keypress_frequency VALUES ('2026-08-24', 'Space', 200)`,

		`CREATE TABLE applications (path TEXT, product_name TEXT)`,
		`INSERT INTO applications VALUES ('/usr/bin/vim', 'Vim')`,
		`CREATE TABLE input_per_application (day TEXT, path TEXT, keys INTEGER, clicks INTEGER, scrolls INTEGER)`,
		`INSERT INTO input_per_application VALUES ('2026-08-20', '/usr/bin/vim', 900, 5, 2)`,
		`INSERT INTO input_per_application VALUES ('2026-08-21', '/usr/bin/vim', 100, 5, 3)`,
		`INSERT INTO input_per_application VALUES ('2026-08-21', '/opt/term', 300, 40, 10)`,
		`CREATE TABLE application_bandwidth (day TEXT, path TEXT, download INTEGER, upload INTEGER)`,
		`INSERT INTO application_bandwidth VALUES ('2026-08-20', '/usr/bin/vim', 2097152, 1048576)`,
		`INSERT INTO application_bandwidth VALUES ('2026-08-21', '/srv/browser', 10485760, 0)`,

		`CREATE TABLE network_interfaces (mac_address TEXT, description TEXT)`,
		`INSERT INTO network_interfaces VALUES ('aa:bb', 'wlan0')`,
		`CREATE TABLE network_interface_bandwidth (day TEXT, mac_address TEXT, download INTEGER, upload INTEGER)`,
		`INSERT INTO network_interface_bandwidth VALUES ('2026-08-20', 'aa:bb', 3145728, 1048576)`,
		`INSERT INTO network_interface_bandwidth VALUES ('2026-08-21', 'aa:bb', 1048576, 1048576)`,
		`INSERT INTO network_interface_bandwidth VALUES ('2026-08-21', 'cc:dd', 2097152, 0)`,
	}
	for _, s := range stmts {
		if _, err := conn.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return path
}

func TestKeyFrequenciesAllTime(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	freq, err := db.KeyFrequencies(context.Background(), nil)
	if err != nil {
		t.Fatalf("KeyFrequencies: %v", err)
	}
	if freq["E"] != 150 {
		t.Errorf("E = %d, want 150 (summed across days)", freq["E"])
	}
	if freq["Space"] != 200 {
		t.Errorf("Space = %d", freq["Space"])
	}
}

func TestKeyFrequenciesRanged(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
	}
	r := &period.DateRange{Start: day(21), End: day(24)}
	freq, err := db.KeyFrequencies(context.Background(), r)
	if err != nil {
		t.Fatalf("KeyFrequencies: %v", err)
	}
	if freq["E"] != 50 {
		t.Errorf("E = %d, want 50 (only the 21st)", freq["E"])
	}
	if _, ok := freq["missing"]; ok {
		t.Error("unexpected key")
	}

	// Reversed range normalizes before querying.
	rev := &period.DateRange{Start: day(24), End: day(21)}
	freq2, err := db.KeyFrequencies(context.Background(), rev)
	if err != nil {
		t.Fatalf("KeyFrequencies reversed: %v", err)
	}
	if freq2["E"] != freq["E"] || freq2["Space"] != freq["Space"] {
		t.Errorf("reversed range differs: %v vs %v", freq2, freq)
	}
}

func TestAppStatsMergesInputAndBandwidth(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	stats, err := db.AppStats(context.Background(), nil)
	if err != nil {
		t.Fatalf("AppStats: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d apps, want 3: %+v", len(stats), stats)
	}
	// Sorted by keys descending; Vim resolved via the applications join.
	if stats[0].Name != "Vim" || stats[0].Keys != 1000 {
		t.Errorf("top app = %+v, want Vim with 1000 keys", stats[0])
	}
	if stats[0].DownloadMB != 2.0 || stats[0].UploadMB != 1.0 {
		t.Errorf("Vim traffic = %.2f/%.2f MB, want 2/1", stats[0].DownloadMB, stats[0].UploadMB)
	}
	// Bandwidth-only apps still show up, with zero input.
	var browser *AppStat
	for i := range stats {
		if stats[i].Name == "/srv/browser" {
			browser = &stats[i]
		}
	}
	if browser == nil || browser.Keys != 0 || browser.DownloadMB != 10.0 {
		t.Errorf("bandwidth-only app = %+v", browser)
	}
}

func TestAppStatsRanged(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
	}
	stats, err := db.AppStats(context.Background(), &period.DateRange{Start: day(21), End: day(21)})
	if err != nil {
		t.Fatalf("AppStats: %v", err)
	}
	for _, s := range stats {
		if s.Name == "Vim" && s.Keys != 100 {
			t.Errorf("Vim keys = %d, want 100 (only the 21st)", s.Keys)
		}
	}
}

func TestAppStatsWithoutBandwidthTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	stmts := []string{
		`CREATE TABLE applications (path TEXT, product_name TEXT)`,
		`CREATE TABLE input_per_application (day TEXT, path TEXT, keys INTEGER, clicks INTEGER, scrolls INTEGER)`,
		`INSERT INTO input_per_application VALUES ('2026-08-20', '/bin/sh', 10, 0, 0)`,
	}
	for _, s := range stmts {
		if _, err := conn.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	conn.Close()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	stats, err := db.AppStats(context.Background(), nil)
	if err != nil {
		t.Fatalf("AppStats should tolerate a missing bandwidth table: %v", err)
	}
	if len(stats) != 1 || stats[0].Keys != 10 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestNetworkStats(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	stats, err := db.NetworkStats(context.Background(), nil)
	if err != nil {
		t.Fatalf("NetworkStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d interfaces, want 2: %+v", len(stats), stats)
	}
	// Described interface summed across days, sorted by download.
	if stats[0].Interface != "wlan0" || stats[0].DownloadMB != 4.0 || stats[0].UploadMB != 2.0 {
		t.Errorf("top interface = %+v, want wlan0 4/2 MB", stats[0])
	}
	// Undescribed interfaces fall back to the MAC address.
	if stats[1].Interface != "cc:dd" {
		t.Errorf("fallback label = %q, want cc:dd", stats[1].Interface)
	}
}

func TestTotalKeys(t *testing.T) {
	db, err := Open(seedDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	total, err := db.TotalKeys(context.Background(), nil)
	if err != nil {
		t.Fatalf("TotalKeys: %v", err)
	}
	if total != 390 {
		t.Errorf("total = %d, want 390", total)
	}
}
