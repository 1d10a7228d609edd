package muhurat

import "time"

// Quality is the auspiciousness tier of a time window.
type Quality string

const (
	// Excellent is the highest tier.
	Excellent Quality = "excellent"
	// Good is the regular auspicious tier.
	Good Quality = "good"
)

// Rank orders qualities for sorting: Excellent before Good before anything else.
func (q Quality) Rank() int {
	switch q {
	case Excellent:
		return 0
	case Good:
		return 1
	}
	return 2
}

// Window is a named time-of-day span with its quality tier.
type Window struct {
	Name      string  `json:"name"` // morning, midday, evening
	Start     string  `json:"start"`
	End       string  `json:"end"`
	StartHour int     `json:"-"`
	Quality   Quality `json:"quality"`
}

func window(name, start, end string, startHour int, q Quality) Window {
	return Window{Name: name, Start: start, End: end, StartHour: startHour, Quality: q}
}

// Rule is the static auspiciousness rule for one puja type. Immutable,
// compiled into the binary, never loaded from a store.
type Rule struct {
	DisplayName   string
	AllowedVaras  map[int]bool
	AllowedTithis map[int]bool
	BlockedMonths map[time.Month]bool
	Windows       []Window
}

func varas(vs ...int) map[int]bool {
	m := make(map[int]bool, len(vs))
	for _, v := range vs {
		m[v] = true
	}
	return m
}

func tithis(ts ...int) map[int]bool {
	m := make(map[int]bool, len(ts))
	for _, t := range ts {
		m[t] = true
	}
	return m
}

func months(ms ...time.Month) map[time.Month]bool {
	m := make(map[time.Month]bool, len(ms))
	for _, mo := range ms {
		m[mo] = true
	}
	return m
}

// ruleTable maps puja type to its rule. The table mirrors the classical
// guidance the product team signed off on; behavioral parity with that
// sign-off matters more than astrological completeness.
var ruleTable = map[string]Rule{
	"vivah": {
		DisplayName:   "Vivah (Wedding)",
		AllowedVaras:  varas(0, 1, 3, 4, 5),
		AllowedTithis: tithis(2, 3, 5, 7, 10, 11, 12, 13, 15),
		BlockedMonths: months(time.July, time.August, time.September),
		Windows: []Window{
			window("morning", "07:00", "09:30", 7, Excellent),
			window("midday", "11:30", "13:00", 11, Good),
			window("evening", "18:00", "21:00", 18, Excellent),
		},
	},
	"griha-pravesh": {
		DisplayName:   "Griha Pravesh (Housewarming)",
		AllowedVaras:  varas(1, 3, 4, 5),
		AllowedTithis: tithis(2, 3, 5, 6, 7, 10, 11, 12, 13, 15),
		Windows: []Window{
			window("morning", "06:30", "09:00", 6, Excellent),
			window("midday", "11:00", "12:30", 11, Good),
		},
	},
	"mundan": {
		DisplayName:   "Mundan (First Haircut)",
		AllowedVaras:  varas(1, 3, 4, 5),
		AllowedTithis: tithis(2, 3, 5, 7, 10, 11, 13),
		Windows: []Window{
			window("morning", "07:00", "10:00", 7, Excellent),
			window("midday", "11:30", "13:30", 11, Good),
		},
	},
	"namkaran": {
		DisplayName:   "Namkaran (Naming Ceremony)",
		AllowedVaras:  varas(0, 1, 3, 4, 5),
		AllowedTithis: tithis(1, 2, 3, 5, 6, 7, 10, 11, 12, 13, 15),
		Windows: []Window{
			window("morning", "08:00", "10:30", 8, Excellent),
			window("evening", "17:00", "19:00", 17, Good),
		},
	},
	"annaprashan": {
		DisplayName:   "Annaprashan (First Feeding)",
		AllowedVaras:  varas(1, 3, 4, 5),
		AllowedTithis: tithis(2, 3, 5, 7, 10, 11, 12, 13, 15),
		Windows: []Window{
			window("morning", "09:00", "11:00", 9, Excellent),
			window("midday", "12:00", "13:30", 12, Good),
		},
	},
	"satyanarayan": {
		DisplayName:   "Satyanarayan Katha",
		AllowedVaras:  varas(0, 1, 2, 3, 4, 5, 6),
		AllowedTithis: tithis(5, 10, 11, 15),
		Windows: []Window{
			window("morning", "08:00", "11:00", 8, Good),
			window("evening", "16:30", "19:30", 16, Excellent),
		},
	},
	"havan": {
		DisplayName:   "Havan (Fire Ritual)",
		AllowedVaras:  varas(0, 1, 2, 3, 4, 5, 6),
		AllowedTithis: tithis(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15),
		Windows: []Window{
			window("morning", "06:00", "09:00", 6, Excellent),
			window("midday", "11:00", "13:00", 11, Good),
			window("evening", "17:00", "19:00", 17, Good),
		},
	},
	"ganesh-puja": {
		DisplayName:   "Ganesh Puja",
		AllowedVaras:  varas(0, 1, 2, 3, 4, 5, 6),
		AllowedTithis: tithis(1, 2, 3, 4, 5, 6, 7, 9, 10, 11, 13, 15),
		Windows: []Window{
			window("morning", "07:30", "10:00", 7, Excellent),
			window("midday", "11:00", "13:30", 11, Good),
			window("evening", "17:30", "20:00", 17, Good),
		},
	},
	"lakshmi-puja": {
		DisplayName:   "Lakshmi Puja",
		AllowedVaras:  varas(1, 3, 5),
		AllowedTithis: tithis(2, 3, 5, 6, 8, 10, 11, 13, 15),
		Windows: []Window{
			window("evening", "18:00", "20:30", 18, Excellent),
			window("morning", "08:00", "10:00", 8, Good),
		},
	},
	"rudrabhishek": {
		DisplayName:   "Rudrabhishek",
		AllowedVaras:  varas(1, 2, 6),
		AllowedTithis: tithis(1, 2, 4, 5, 8, 11, 13, 14),
		Windows: []Window{
			window("morning", "05:30", "08:30", 5, Excellent),
			window("evening", "17:00", "19:30", 17, Good),
		},
	},
}

// PujaTypes returns the configured puja type keys.
func PujaTypes() []string {
	out := make([]string, 0, len(ruleTable))
	for k := range ruleTable {
		out = append(out, k)
	}
	return out
}

// KnownPujaType reports whether pujaType has a rule configured.
func KnownPujaType(pujaType string) bool {
	_, ok := ruleTable[pujaType]
	return ok
}

// PujaDisplayName returns the human-readable name for a puja type, or "".
func PujaDisplayName(pujaType string) string {
	return ruleTable[pujaType].DisplayName
}
