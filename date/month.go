package date

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// MonthOf returns the calendar month containing d.
func MonthOf(d Date) Range { return Range{From: d.StartOfMonth(), To: d.EndOfMonth()} }

// Months returns n consecutive calendar months, the first one containing start.
func Months(start Date, n int) []Range {
	months := make([]Range, 0, n)
	for i := range n {
		months = append(months, MonthOf(start.AddMonth(i)))
	}
	return months
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Label is a short human name of the range's first month, like "Oct 2026".
func (r Range) Label() string { return r.From.Format("Jan 2006") }

// Identifier returns the ISO year-month of the range's first month, like "2026-10".
func (r Range) Identifier() string { return r.From.Format("2006-01") }
