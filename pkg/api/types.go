// Package api implements the statistics-fetch clients: the hosted account
// API (Bearer-authenticated) and the local client HTTP API. Both return
// the same decoded payload types; the TUI never sees raw JSON.
package api

import "encoding/json"

// UserTotals are the lifetime counters attached to an account or computer.
type UserTotals struct {
	Keys          int64   `json:"keys,string"`
	Clicks        int64   `json:"clicks,string"`
	DownloadMB    float64 `json:"download_mb,string"`
	UploadMB      float64 `json:"upload_mb,string"`
	UptimeSeconds int64   `json:"uptime_seconds,string"`
	Scrolls       int64   `json:"scrolls,string"`
	DistanceMiles float64 `json:"distance_miles,string"`
}

// UserRanks are the account's global leaderboard positions.
type UserRanks struct {
	Keys     int64 `json:"keys,string"`
	Clicks   int64 `json:"clicks,string"`
	Download int64 `json:"download,string"`
	Upload   int64 `json:"upload,string"`
	Uptime   int64 `json:"uptime,string"`
	Scrolls  int64 `json:"scrolls,string"`
}

// UserStats is the account summary payload.
type UserStats struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	DateJoined    string     `json:"date_joined"`
	FirstPulse    string     `json:"first_pulse_date"`
	LastPulse     string     `json:"last_pulse_date"`
	PulseCount    int64      `json:"pulses"`
	IsPremium     bool       `json:"is_premium"`
	Totals        UserTotals `json:"totals"`
	Ranks         *UserRanks `json:"ranks"`
	DistanceUnits string     `json:"distance_system"`
}

// Pulse is one uploaded batch of counters.
type Pulse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Keys          int64   `json:"keys"`
	Clicks        int64   `json:"clicks"`
	DownloadMB    float64 `json:"download_mb"`
	UploadMB      float64 `json:"upload_mb"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	Scrolls       int64   `json:"scrolls"`
	AutoPulse     bool    `json:"auto_pulse"`
	ClientVersion string  `json:"client_version"`
}

// Computer is one registered machine on the account.
type Computer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	OS            string     `json:"os"`
	ClientVersion string     `json:"client_version"`
	Archived      bool       `json:"is_archived"`
	Totals        UserTotals `json:"totals"`
	Pulses        int64      `json:"pulses"`
	LastPulseDate string     `json:"last_pulse_date"`
}

// Wire wrappers. The hosted API nests every resource under a keyed object.
type userEnvelope struct {
	User UserStats `json:"user"`
}

type pulsesEnvelope struct {
	Pulses []Pulse `json:"pulses"`
}

type computersEnvelope struct {
	Computers []Computer `json:"computers"`
}

// accountTotals is the local client's flat totals document; every number
// arrives as a string.
type accountTotals struct {
	Keys     json.Number `json:"keys"`
	Clicks   json.Number `json:"clicks"`
	Download json.Number `json:"download"`
	Upload   json.Number `json:"upload"`
	Uptime   json.Number `json:"uptime"`
	Scrolls  json.Number `json:"scrolls"`
}
