package app

// months maps Dutch month names to their number
var months = map[string]int{
	"januari":   1,
	"februari":  2,
	"maart":     3,
	"april":     4,
	"mei":       5,
	"juni":      6,
	"juli":      7,
	"augustus":  8,
	"september": 9,
	"oktober":   10,
	"november":  11,
	"december":  12,
}

// MonthNumber returns the month number (1-12) for a Dutch month name, or 0 if
// the name is unknown. Matching is exact and case-sensitive.
func MonthNumber(name string) int {
	return months[name]
}
