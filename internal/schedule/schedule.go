package schedule

import (
	"fmt"
	"time"
)

// Dhaka is a fixed UTC+6 offset. Bangladesh has no DST, so the exam
// calendar uses a plain offset instead of the tz database.
var Dhaka = time.FixedZone("Asia/Dhaka", 6*60*60)

// ExamHour is the daily exam start in Dhaka local time (9 PM).
const ExamHour = 21

const (
	windowDays      = 10
	publishLeadDays = 20

	shortDuration   = 25 * time.Minute
	defaultDuration = 30 * time.Minute
)

// Entry assigns one subject to one calendar day of the exam window.
type Entry struct {
	Day     int     `json:"day"`
	Subject Subject `json:"subject"`
}

// Month is the fully derived exam calendar for one (year, month). It is
// recomputed on demand and never stored; the month seed makes every
// recomputation identical.
type Month struct {
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	StartDay   int        `json:"start_day"`
	LastDay    int        `json:"last_day"`
	PublishDay int        `json:"publish_day"`
	Entries    []Entry    `json:"entries"`
}

// Slot is one day's exam occurrence with its resolved UTC instants.
type Slot struct {
	Day      int           `json:"day"`
	Subject  Subject       `json:"subject"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
}

// MonthSeed keys the deterministic subject shuffle for a month.
func MonthSeed(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d-schedule", year, int(month))
}

// PaperSeed keys the deterministic paper pick for one (day, subject).
func PaperSeed(year int, month time.Month, day int, subjectID string) string {
	return fmt.Sprintf("%d-%02d-%02d|%s", year, int(month), day, subjectID)
}

// Duration returns the exam length for a subject.
func Duration(subjectID string) time.Duration {
	if _, ok := shortSubjects[subjectID]; ok {
		return shortDuration
	}
	return defaultDuration
}

// ForMonth derives the exam calendar for a (year, month): the last ten
// calendar days, each carrying one subject from the seeded shuffle of the
// catalog.
func ForMonth(year int, month time.Month) Month {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, Dhaka).Day()
	startDay := lastDay - (windowDays - 1)
	publishDay := startDay - publishLeadDays
	if publishDay < 1 {
		publishDay = 1
	}

	perm := Shuffle(len(Subjects), MonthSeed(year, month))
	entries := make([]Entry, windowDays)
	for i := 0; i < windowDays; i++ {
		entries[i] = Entry{Day: startDay + i, Subject: Subjects[perm[i]]}
	}
	return Month{
		Year:       year,
		Month:      month,
		StartDay:   startDay,
		LastDay:    lastDay,
		PublishDay: publishDay,
		Entries:    entries,
	}
}

// PublishAt is the instant the routine becomes visible: midnight Dhaka on
// the publish day.
func (m Month) PublishAt() time.Time {
	return time.Date(m.Year, m.Month, m.PublishDay, 0, 0, 0, 0, Dhaka)
}

// Published reports whether the routine is visible at now.
func (m Month) Published(now time.Time) bool {
	return !now.Before(m.PublishAt())
}

// EntryForDay returns the assignment for a calendar day within the window.
func (m Month) EntryForDay(day int) (Entry, bool) {
	if day < m.StartDay || day > m.LastDay {
		return Entry{}, false
	}
	return m.Entries[day-m.StartDay], true
}

// SlotForDay resolves a window day to its timed exam occurrence.
func (m Month) SlotForDay(day int) (Slot, bool) {
	e, ok := m.EntryForDay(day)
	if !ok {
		return Slot{}, false
	}
	d := Duration(e.Subject.ID)
	start := time.Date(m.Year, m.Month, day, ExamHour, 0, 0, 0, Dhaka)
	return Slot{
		Day:      day,
		Subject:  e.Subject,
		Start:    start,
		End:      start.Add(d),
		Duration: d,
	}, true
}

// Phase is the gate state of today's exam relative to a point in time.
type Phase string

const (
	// PhaseIdle: today has no scheduled exam (outside the window).
	PhaseIdle Phase = "idle"
	// PhasePending: today's exam has not started yet.
	PhasePending Phase = "pending"
	// PhaseLive: now is within [start, end] of today's exam.
	PhaseLive Phase = "live"
	// PhaseExpired: today's exam has already ended.
	PhaseExpired Phase = "expired"
)

// View is the pure gate derivation for one instant: the month calendar,
// whether it is published, and today's slot with its phase. Re-deriving at
// a later instant always yields consistent state.
type View struct {
	Month     Month
	Published bool
	Today     *Slot
	Phase     Phase
}

// At derives the view for the instant now.
func At(now time.Time) View {
	local := now.In(Dhaka)
	m := ForMonth(local.Year(), local.Month())
	v := View{Month: m, Published: m.Published(now), Phase: PhaseIdle}

	slot, ok := m.SlotForDay(local.Day())
	if !ok {
		return v
	}
	v.Today = &slot
	switch {
	case now.Before(slot.Start):
		v.Phase = PhasePending
	case now.After(slot.End):
		v.Phase = PhaseExpired
	default:
		v.Phase = PhaseLive
	}
	return v
}
