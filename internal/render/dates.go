package render

import "time"

const storedDateLayout = "2006-01-02"

// FormatMonth renders a stored date as MM/yyyy. Values that do not parse are
// passed through untouched so a partially typed date still shows up.
func FormatMonth(date string) string {
	t, err := time.Parse(storedDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("01/2006")
}

// DateRange renders the span for an entry. A missing start date suppresses
// the range entirely; a missing end date reads as ongoing.
func DateRange(start, end string) string {
	if start == "" {
		return ""
	}
	if end == "" {
		return FormatMonth(start) + " – Present"
	}
	return FormatMonth(start) + " – " + FormatMonth(end)
}
