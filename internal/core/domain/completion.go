package domain

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical key format of the completion log.
const DateLayout = "2006-01-02"

// CompleteItem lists what was actually performed on one calendar date.
type CompleteItem struct {
	Date string         `json:"date"`
	List []ExerciseItem `json:"list"`
}

// CompletionLog holds at most one CompleteItem per date, kept sorted by date.
type CompletionLog []CompleteItem

// ParseDate accepts only canonical YYYY-MM-DD strings.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return time.Time{}, NewValidationError("date", "iso8601", "date must be a valid YYYY-MM-DD calendar date")
	}
	return t, nil
}

// FormatDate renders the calendar date of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func NewCompleteItem(date string, items []ExerciseItem) (CompleteItem, error) {
	if _, err := ParseDate(date); err != nil {
		return CompleteItem{}, err
	}
	if err := validateItems("list", items); err != nil {
		return CompleteItem{}, err
	}
	list := make([]ExerciseItem, len(items))
	copy(list, items)
	return CompleteItem{Date: date, List: list}, nil
}

func (l CompletionLog) search(date string) (int, bool) {
	return slices.BinarySearchFunc(l, date, func(c CompleteItem, d string) int {
		return strings.Compare(c.Date, d)
	})
}

// Record replaces the list stored for date, or inserts a new entry.
// The receiver is left untouched when validation fails.
func (l *CompletionLog) Record(date string, items []ExerciseItem) error {
	entry, err := NewCompleteItem(date, items)
	if err != nil {
		return err
	}

	i, found := l.search(date)
	if found {
		(*l)[i] = entry
		return nil
	}
	*l = slices.Insert(*l, i, entry)
	return nil
}

func (l CompletionLog) Find(date string) (CompleteItem, bool) {
	i, found := l.search(date)
	if !found {
		return CompleteItem{}, false
	}
	return l[i].clone(), true
}

// Between returns entries with from <= date <= to. Empty bounds are open.
func (l CompletionLog) Between(from, to string) []CompleteItem {
	out := make([]CompleteItem, 0)
	for _, c := range l {
		if from != "" && c.Date < from {
			continue
		}
		if to != "" && c.Date > to {
			break
		}
		out = append(out, c.clone())
	}
	return out
}

// Sort restores the date ordering and collapses duplicated dates, keeping
// the last occurrence. Used on data loaded from storage.
func (l *CompletionLog) Sort() {
	byDate := make(map[string]CompleteItem, len(*l))
	for _, c := range *l {
		byDate[c.Date] = c
	}
	out := make(CompletionLog, 0, len(byDate))
	for _, c := range byDate {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b CompleteItem) int {
		return strings.Compare(a.Date, b.Date)
	})
	*l = out
}

func (l CompletionLog) Clone() CompletionLog {
	if l == nil {
		return nil
	}
	out := make(CompletionLog, len(l))
	for i, c := range l {
		out[i] = c.clone()
	}
	return out
}

func (c CompleteItem) clone() CompleteItem {
	list := make([]ExerciseItem, len(c.List))
	copy(list, c.List)
	return CompleteItem{Date: c.Date, List: list}
}
