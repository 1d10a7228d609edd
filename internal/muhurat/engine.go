package muhurat

import "time"

// amavasyaTithi is the new-moon lunar day, inauspicious for every ritual.
const amavasyaTithi = 30

// Result describes why a date is auspicious for one puja type.
// A nil *Result means "inauspicious for this ritual on this date".
type Result struct {
	PujaType   string   `json:"pujaType"`
	PujaName   string   `json:"pujaName"`
	Date       string   `json:"date"`
	Tithi      int      `json:"tithi"`
	TithiName  string   `json:"tithiName"`
	Vara       int      `json:"vara"`
	VaraName   string   `json:"varaName"`
	Windows    []Window `json:"windows"`
	BestWindow *Window  `json:"bestWindow"`
}

// Evaluate applies the static rule for pujaType to the given date.
// Rejections short-circuit in order: unknown type, amavasya (global),
// blocked month, tithi not allowed, vara not allowed.
func Evaluate(pujaType string, date time.Time) *Result {
	rule, ok := ruleTable[pujaType]
	if !ok {
		return nil
	}

	date = atMidnight(date)
	tithi := Tithi(date)
	vara := Vara(date)

	if tithi == amavasyaTithi {
		return nil
	}
	if rule.BlockedMonths[date.Month()] {
		return nil
	}
	if !rule.AllowedTithis[tithi] {
		return nil
	}
	if !rule.AllowedVaras[vara] {
		return nil
	}

	windows := make([]Window, len(rule.Windows))
	copy(windows, rule.Windows)

	return &Result{
		PujaType:   pujaType,
		PujaName:   rule.DisplayName,
		Date:       date.Format(time.DateOnly),
		Tithi:      tithi,
		TithiName:  TithiName(tithi),
		Vara:       vara,
		VaraName:   VaraName(vara),
		Windows:    windows,
		BestWindow: bestWindow(windows),
	}
}

// bestWindow picks the first Excellent window, else the first window.
// A rule with zero windows is a configuration error, not a runtime case.
func bestWindow(windows []Window) *Window {
	if len(windows) == 0 {
		return nil
	}
	for i := range windows {
		if windows[i].Quality == Excellent {
			return &windows[i]
		}
	}
	return &windows[0]
}
