// Package layouts holds the keyboard layout catalog used by the heatmap
// page and its search popup.
package layouts

import "github.com/sahilm/fuzzy"

// Layout identifies one keyboard layout in the catalog.
type Layout int

const (
	Qwerty Layout = iota
	Qwertz
	Azerty
	Dvorak
	Colemak
	ColemakModDH
	Workman
	Norman
	Bepo
	Neo
	Halmak
	Engram
	MTGAP
	Minimak
	Tarmak
	CarpalxQGMLWY
	Asset
	Canary
	Gallium
	Semimak
	Graphite
	Sturdy
	ISRT
	Maltron
	JCUKEN
	TurkishF
	Greek
	HebrewStandard
	Arabic101
	ThaiKedmanee
	Vietnamese
	BulgarianPhonetic
	UkrainianEnhanced
	SwissGerman
	CanadianMultilingual
	USInternational
	UKExtended
	Brazilian
	Portuguese
	Spanish
	Italian
	PolishProgrammers
	CzechProgrammers
)

var names = map[Layout]string{
	Qwerty:               "QWERTY",
	Qwertz:               "QWERTZ",
	Azerty:               "AZERTY",
	Dvorak:               "Dvorak",
	Colemak:              "Colemak",
	ColemakModDH:         "Colemak Mod-DH",
	Workman:              "Workman",
	Norman:               "Norman",
	Bepo:                 "BÉPO",
	Neo:                  "Neo",
	Halmak:               "Halmak",
	Engram:               "Engram",
	MTGAP:                "MTGAP",
	Minimak:              "Minimak",
	Tarmak:               "Tarmak",
	CarpalxQGMLWY:        "Carpalx QGMLWY",
	Asset:                "Asset",
	Canary:               "Canary",
	Gallium:              "Gallium",
	Semimak:              "Semimak",
	Graphite:             "Graphite",
	Sturdy:               "Sturdy",
	ISRT:                 "ISRT",
	Maltron:              "Maltron",
	JCUKEN:               "ЙЦУКЕН",
	TurkishF:             "Turkish F",
	Greek:                "Greek",
	HebrewStandard:       "Hebrew Standard",
	Arabic101:            "Arabic 101",
	ThaiKedmanee:         "Thai Kedmanee",
	Vietnamese:           "Vietnamese",
	BulgarianPhonetic:    "Bulgarian Phonetic",
	UkrainianEnhanced:    "Ukrainian Enhanced",
	SwissGerman:          "Swiss German",
	CanadianMultilingual: "Canadian Multilingual",
	USInternational:      "US International",
	UKExtended:           "UK Extended",
	Brazilian:            "Brazilian ABNT2",
	Portuguese:           "Portuguese",
	Spanish:              "Spanish",
	Italian:              "Italian",
	PolishProgrammers:    "Polish Programmers",
	CzechProgrammers:     "Czech Programmers",
}

// String returns the display name.
func (l Layout) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return "QWERTY"
}

// All returns every layout in catalog order.
func All() []Layout {
	out := make([]Layout, 0, len(names))
	for i := Layout(0); int(i) < len(names); i++ {
		out = append(out, i)
	}
	return out
}

// layoutSource adapts the catalog to fuzzy.Source.
type layoutSource []Layout

func (s layoutSource) String(i int) string { return s[i].String() }
func (s layoutSource) Len() int            { return len(s) }

// Search returns the layouts matching query by fuzzy match, best match
// first. An empty query returns the full catalog in order.
func Search(query string) []Layout {
	all := All()
	if query == "" {
		return all
	}
	matches := fuzzy.FindFrom(query, layoutSource(all))
	out := make([]Layout, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}
