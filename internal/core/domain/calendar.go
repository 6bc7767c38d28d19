package domain

import (
	"fmt"
	"time"
)

// YearMonth is the calendar navigation state. Month is a zero-based index
// (0 = January) and is always normalized into 0..11.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NormalizeYearMonth folds any month index into 0..11, carrying whole years.
func NormalizeYearMonth(year, monthIndex int) YearMonth {
	carry := monthIndex / 12
	month := monthIndex % 12
	if month < 0 {
		month += 12
		carry--
	}
	return YearMonth{Year: year + carry, Month: month}
}

// CurrentYearMonth is the "today" reference point in now's location.
func CurrentYearMonth(now time.Time) YearMonth {
	return YearMonth{Year: now.Year(), Month: int(now.Month()) - 1}
}

func (ym YearMonth) Next() YearMonth {
	return NormalizeYearMonth(ym.Year, ym.Month+1)
}

func (ym YearMonth) Prev() YearMonth {
	return NormalizeYearMonth(ym.Year, ym.Month-1)
}

// TimeMonth converts the zero-based index to time.Month.
func (ym YearMonth) TimeMonth() time.Month {
	return time.Month(ym.Month + 1)
}

func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.TimeMonth(), 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) DaysInMonth() int {
	return time.Date(ym.Year, ym.TimeMonth()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf returns the canonical key of day d in this month.
func (ym YearMonth) DateOf(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", ym.Year, ym.Month+1, day)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month+1)
}

// ParseYearMonth reads the "YYYY-MM" form produced by String.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, NewValidationError("month", "yyyy-mm", "month must be formatted as YYYY-MM")
	}
	return CurrentYearMonth(t), nil
}

// CalendarCell is one square of the month grid. Padding cells have a
// non-positive Day and an empty Date.
type CalendarCell struct {
	Day       int            `json:"day"`
	Date      string         `json:"date,omitempty"`
	Performed bool           `json:"performed"`
	List      []ExerciseItem `json:"list"`
}

func (c CalendarCell) IsPadding() bool {
	return c.Day <= 0
}

// BuildMonthGrid lays out the month on a Sunday-first 7 column grid:
// leading padding up to the weekday of day 1, then one cell per day.
// The log is only read.
func BuildMonthGrid(ym YearMonth, log CompletionLog) []CalendarCell {
	ym = NormalizeYearMonth(ym.Year, ym.Month)

	leading := int(ym.FirstDay().Weekday())
	days := ym.DaysInMonth()

	byDate := make(map[string][]ExerciseItem, len(log))
	for _, c := range log {
		byDate[c.Date] = c.List
	}

	cells := make([]CalendarCell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, CalendarCell{Day: -i, List: []ExerciseItem{}})
	}

	for d := 1; d <= days; d++ {
		date := ym.DateOf(d)
		list, ok := byDate[date]
		cell := CalendarCell{
			Day:       d,
			Date:      date,
			Performed: ok && len(list) > 0,
			List:      make([]ExerciseItem, len(list)),
		}
		copy(cell.List, list)
		cells = append(cells, cell)
	}

	return cells
}
