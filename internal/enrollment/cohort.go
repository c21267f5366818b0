// Package enrollment implements the cohort calendar and intern identifier
// rules used by both the admin creation path and the roster sync engine.
package enrollment

import "time"

// ProgramDays is the inclusive program length: every cohort runs exactly four
// weeks from its start date.
const ProgramDays = 28

// Cohort describes the enrollment group an application date falls into.
type Cohort struct {
	Phase            int
	ApplyWindowStart time.Time
	ApplyWindowEnd   time.Time
	Start            time.Time
	End              time.Time
}

// Compute buckets an application timestamp into one of the three recurring
// monthly cohorts:
//
//	day 1-10  -> phase 2, starting the 11th of the same month
//	day 11-21 -> phase 3, starting the 21st of the same month
//	day 22+   -> phase 1, starting the 1st of the next month
//
// December applications after the 21st roll over into January of the next
// year. The result depends only on the calendar date of the input; the
// input's location is preserved.
func Compute(appliedAt time.Time) Cohort {
	year, month, day := appliedAt.Date()
	loc := appliedAt.Location()

	var c Cohort
	switch {
	case day <= 10:
		c.Phase = 2
		c.ApplyWindowStart = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		c.ApplyWindowEnd = time.Date(year, month, 10, 0, 0, 0, 0, loc)
		c.Start = time.Date(year, month, 11, 0, 0, 0, 0, loc)
	case day <= 21:
		c.Phase = 3
		c.ApplyWindowStart = time.Date(year, month, 11, 0, 0, 0, 0, loc)
		c.ApplyWindowEnd = time.Date(year, month, 21, 0, 0, 0, 0, loc)
		c.Start = time.Date(year, month, 21, 0, 0, 0, 0, loc)
	default:
		c.Phase = 1
		c.ApplyWindowStart = time.Date(year, month, 22, 0, 0, 0, 0, loc)
		// time.Date normalizes month 13, so December rolls into January of
		// the next year here.
		c.Start = time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
		c.ApplyWindowEnd = c.Start
	}
	c.End = c.Start.AddDate(0, 0, ProgramDays)
	return c
}
