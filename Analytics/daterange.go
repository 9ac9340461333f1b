package Analytics

import (
	"time"
)

// Date range modes accepted by the analytics endpoints.
const (
	RangeAll       = "all"
	RangeToday     = "today"
	RangeLastWeek  = "lastWeek"
	RangeLastMonth = "lastMonth"
	RangeCustom    = "custom"
)

const dateLayout = "2006-01-02"

// DateRange narrows job queries by date before aggregation. From and To are
// "2006-01-02" strings, inclusive on both ends.
type DateRange struct {
	Mode string `json:"mode"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ResolvedRange is the concrete bound applied to JobEntry.date. Applied is
// false when no filtering takes effect, which callers surface to the client
// as "filter not applied".
type ResolvedRange struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Applied bool   `json:"applied"`
}

// Resolve converts the range into concrete bounds relative to now. A custom
// range with either bound missing is inert rather than guessing the missing
// side.
func (r DateRange) Resolve(now time.Time) ResolvedRange {
	switch r.Mode {
	case RangeToday:
		today := now.Format(dateLayout)
		return ResolvedRange{From: today, To: today, Applied: true}
	case RangeLastWeek:
		// Rolling 7 days ending today.
		return ResolvedRange{
			From:    now.AddDate(0, 0, -6).Format(dateLayout),
			To:      now.Format(dateLayout),
			Applied: true,
		}
	case RangeLastMonth:
		// The calendar month before the current one.
		firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		firstOfLastMonth := firstOfThisMonth.AddDate(0, -1, 0)
		lastOfLastMonth := firstOfThisMonth.AddDate(0, 0, -1)
		return ResolvedRange{
			From:    firstOfLastMonth.Format(dateLayout),
			To:      lastOfLastMonth.Format(dateLayout),
			Applied: true,
		}
	case RangeCustom:
		if r.From == "" || r.To == "" {
			return ResolvedRange{}
		}
		return ResolvedRange{From: r.From, To: r.To, Applied: true}
	}
	return ResolvedRange{}
}

// ValidDate reports whether s parses as a calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
