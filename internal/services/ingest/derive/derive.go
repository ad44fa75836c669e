// Package derive computes the derived reporting columns for a ticket batch
//
// Every pass runs column-wise over the whole batch so undefined inputs
// propagate uniformly: a missing timestamp yields NaN hours, NaN days, the
// "> 1 day" class and an empty bucket together, never a half-derived row
package derive

import (
	"fmt"
	"math"
	"time"

	"deskscope/internal/services/ingest/domain"
)

// Computer derives the full column set; construction binds the category
// resolver so lookups stay injectable
type Computer struct {
	cats domain.CategoryResolver
}

// New constructs a Computer
func New(cats domain.CategoryResolver) *Computer {
	if cats == nil {
		panic("derive.Computer requires a category resolver")
	}
	return &Computer{cats: cats}
}

// Enrich computes every derived column for the batch. Input rows are copied,
// not mutated
func (c *Computer) Enrich(rows []domain.TicketRow) []domain.EnrichedRow {
	out := make([]domain.EnrichedRow, len(rows))
	for i := range rows {
		out[i].TicketRow = rows[i]
	}

	weekColumns(out)
	dateColumns(out)
	resolutionColumns(out)
	businessDayColumn(out)
	c.categoryColumns(out)

	return out
}

// weekColumns fills the ISO week number and the ISO year-week label
func weekColumns(rows []domain.EnrichedRow) {
	for i := range rows {
		created := rows[i].Created
		if created == nil {
			continue
		}
		// ISO year, not calendar year: Dec 29+ can be week 1 of next year
		y, w := created.ISOWeek()
		rows[i].WeekNumber = w
		rows[i].WeekLabel = fmt.Sprintf("%04d-W%02d", y, w)
	}
}

// dateColumns fills the plain date labels plus calendar year and month
func dateColumns(rows []domain.EnrichedRow) {
	for i := range rows {
		if t := rows[i].Created; t != nil {
			rows[i].CreatedDate = t.Format("2006-01-02")
			rows[i].Year = t.Year()
			rows[i].Month = int(t.Month())
		}
		if t := rows[i].Updated; t != nil {
			rows[i].UpdatedDate = t.Format("2006-01-02")
		}
	}
}

// bucketBounds are the half-open (lo, hi] resolution-time buckets in hours
var bucketBounds = [...]float64{0, 1, 2, 4, 8, 24, 48, 72, 168, 336, 504}

// resolutionColumns fills hours, floored days, the same-day class, and the
// bucket label. Hours and days are NaN when either endpoint is missing
func resolutionColumns(rows []domain.EnrichedRow) {
	for i := range rows {
		hours := math.NaN()
		if rows[i].Created != nil && rows[i].CurrentSubstatusDate != nil {
			hours = rows[i].CurrentSubstatusDate.Sub(*rows[i].Created).Hours()
		}
		days := math.NaN()
		if !math.IsNaN(hours) {
			// floor toward minus infinity, matching timedelta day arithmetic
			days = math.Floor(hours / 24)
		}

		rows[i].ResolutionHours = hours
		rows[i].ResolutionDays = days

		// NaN compares false, so unresolved tickets land in "> 1 day"
		if days <= 1 {
			rows[i].ResolutionClass = "Same day"
		} else {
			rows[i].ResolutionClass = "> 1 day"
		}

		rows[i].ResolutionBucket = bucketLabel(hours)
	}
}

// bucketLabel maps hours into its (lo, hi] bucket. Exactly zero hours and
// anything past the last bound fall into no bucket at all
func bucketLabel(hours float64) string {
	if math.IsNaN(hours) {
		return ""
	}
	for i := 0; i+1 < len(bucketBounds); i++ {
		if hours > bucketBounds[i] && hours <= bucketBounds[i+1] {
			return fmt.Sprintf("%d–%d", int(bucketBounds[i]), int(bucketBounds[i+1]))
		}
	}
	return ""
}

// businessDayColumn counts weekdays in [created date, updated date), weekends
// excluded, holidays ignored. Negative when updated precedes created
func businessDayColumn(rows []domain.EnrichedRow) {
	for i := range rows {
		if rows[i].Created == nil || rows[i].Updated == nil {
			continue
		}
		begin := dateOnly(*rows[i].Created)
		end := dateOnly(*rows[i].Updated)
		rows[i].BusinessDaysOpen = busdayCount(begin, end)
	}
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// busdayCount counts weekdays in the half-open range [begin, end)
func busdayCount(begin, end time.Time) int {
	if end.Before(begin) {
		return -busdayCount(end, begin)
	}
	days := int(end.Sub(begin) / (24 * time.Hour))
	count := days / 7 * 5
	wd := int(begin.Weekday())
	for i := 0; i < days%7; i++ {
		d := (wd + i) % 7
		if d != int(time.Saturday) && d != int(time.Sunday) {
			count++
		}
	}
	return count
}

// categoryColumns resolves category ids to display names. Main misses stay
// nil; sub misses render the literal "NA" downstream expects
func (c *Computer) categoryColumns(rows []domain.EnrichedRow) {
	for i := range rows {
		if name, ok := c.cats.MainName(rows[i].MainCategoryID); ok {
			n := name
			rows[i].MainCategoryName = &n
		}
		rows[i].SubCategoryName = c.cats.SubName(rows[i].SubCategoryID)
	}
}
