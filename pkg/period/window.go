package period

import (
	"fmt"
	"time"

	"github.com/jordanlanch/commercedash/pkg/domain"
)

// Window is an inclusive date range over which metrics are computed.
// Both bounds are treated as whole days; times of day are not significant.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the window length in calendar days, inclusive of both ends
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether t falls inside the window, inclusive on both
// ends. The comparison is by calendar day, so a timestamp anywhere within
// the end day still counts.
func (w Window) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// String formats the window as "2006-01-02..2006-01-02"
func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// Resolve validates [start, end] and derives the immediately preceding
// window of equal calendar length: previous.End is the day before start,
// previous.Start is start minus the current window's length in days.
// The previous window is never clamped to the dataset's actual date range;
// a window entirely outside the data simply yields zero fact rows.
func Resolve(start, end time.Time) (current, previous Window, err error) {
	start = truncateDay(start)
	end = truncateDay(end)

	if !start.Before(end) {
		return Window{}, Window{}, domain.NewInvalidWindowError(
			fmt.Sprintf("start date %s must be before end date %s",
				start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	current = Window{Start: start, End: end}
	previous = Window{
		Start: start.AddDate(0, 0, -current.Days()),
		End:   start.AddDate(0, 0, -1),
	}
	return current, previous, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
