package layouts

import "strings"

// Key is one cap in the rendered keyboard grid. MatchKey is the
// identifier used by the heatmap data ("A", "SPACE", "LSHIFT", ...).
type Key struct {
	Label    string
	MatchKey string
	Width    int // cells, label box included
}

// alphaRows holds the three letter rows for layouts where they differ
// from QWERTY. Layouts not listed fall back to QWERTY legends; their key
// identities in the heatmap data still match because the client reports
// logical key names.
var alphaRows = map[Layout][3]string{
	Qwerty:       {"QWERTYUIOP", "ASDFGHJKL;", "ZXCVBNM,./"},
	Qwertz:       {"QWERTZUIOP", "ASDFGHJKL;", "YXCVBNM,./"},
	Azerty:       {"AZERTYUIOP", "QSDFGHJKLM", "WXCVBN,;:!"},
	Dvorak:       {"',.PYFGCRL", "AOEUIDHTNS", ";QJKXBMWVZ"},
	Colemak:      {"QWFPGJLUY;", "ARSTDHNEIO", "ZXCVBKM,./"},
	ColemakModDH: {"QWFPBJLUY;", "ARSTGMNEIO", "ZXCDVKH,./"},
	Workman:      {"QDRWBJFUP;", "ASHTGYNEOI", "ZXMCVKL,./"},
	Norman:       {"QWDFKJURL;", "ASETGYNIOH", "ZXCVBPM,./"},
	Halmak:       {"WLRBZ;QUDJ", "SHNT,.AEOI", "FMVC/GPXKY"},
	Engram:       {"BYOU'\"LDWV", "CIEA,.HTSN", "GXJK-?RMFP"},
	Canary:       {"WLYPKZXOU;", "CRSTBFNEIA", "JVDGQMH/,."},
	Graphite:     {"BLDWZ'FOUJ", "NRTSGYHAEI", "QXMCVKP.,;"},
	Sturdy:       {"VMLCPXFOUJ", "STRDY.NAEI", "ZKQGWBH';,"},
	ISRT:         {"YCLMKZFU,'", "ISRTGPNEAO", "QVWDJBH/.X"},
}

// Rows returns the renderable key grid for l: number row, three alpha
// rows, and the space row.
func Rows(l Layout) [][]Key {
	alpha, ok := alphaRows[l]
	if !ok {
		alpha = alphaRows[Qwerty]
	}

	rows := make([][]Key, 0, 5)
	rows = append(rows, legendRow("1234567890"))
	for _, legends := range alpha {
		rows = append(rows, legendRow(legends))
	}
	rows = append(rows, []Key{
		{Label: "LSHIFT", MatchKey: "LSHIFT", Width: 9},
		{Label: "SPACE", MatchKey: "SPACE", Width: 30},
		{Label: "RSHIFT", MatchKey: "RSHIFT", Width: 9},
	})
	return rows
}

func legendRow(legends string) []Key {
	row := make([]Key, 0, len(legends))
	for _, r := range legends {
		label := string(r)
		row = append(row, Key{
			Label:    label,
			MatchKey: strings.ToUpper(label),
			Width:    5,
		})
	}
	return row
}
