package plan

import "time"

const isoDate = "2006-01-02"

// DatesInWindow returns the ISO dates within the 7 days starting at start
// (inclusive) whose English weekday name appears in weekdays, in
// chronological order. An unparsable start yields an empty list.
func DatesInWindow(start string, weekdays []string) []string {
	dates := []string{}
	day, err := time.Parse(isoDate, start)
	if err != nil {
		return dates
	}

	wanted := make(map[string]bool, len(weekdays))
	for _, w := range weekdays {
		wanted[w] = true
	}

	for i := range 7 {
		d := day.AddDate(0, 0, i)
		if wanted[d.Weekday().String()] {
			dates = append(dates, d.Format(isoDate))
		}
	}
	return dates
}
