package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/auth"
	"github.com/alphaquiz/monthlyquiz/internal/eventlog"
	"github.com/alphaquiz/monthlyquiz/internal/grading"
	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
	"github.com/alphaquiz/monthlyquiz/internal/relay"
	"github.com/alphaquiz/monthlyquiz/internal/schedule"

	"github.com/google/uuid"
)

// autoGrace is how long after the deadline a late auto-submission is still
// accepted. Covers clients whose poll loop was suspended past the
// zero-crossing and network delivery of the forced submit.
const autoGrace = 2 * time.Minute

type todayView struct {
	Day         int              `json:"day"`
	Subject     schedule.Subject `json:"subject"`
	Phase       schedule.Phase   `json:"phase"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	DurationMin int              `json:"duration_min"`
}

func newTodayView(v schedule.View) *todayView {
	if v.Today == nil {
		return nil
	}
	return &todayView{
		Day:         v.Today.Day,
		Subject:     v.Today.Subject,
		Phase:       v.Phase,
		Start:       v.Today.Start,
		End:         v.Today.End,
		DurationMin: int(v.Today.Duration / time.Minute),
	}
}

// ScheduleHandler serves the month routine, or only the publish date while
// the routine is still embargoed.
// GET /quiz/schedule
func ScheduleHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := schedule.At(now())
		resp := map[string]any{
			"published": v.Published,
			"year":      v.Month.Year,
			"month":     int(v.Month.Month),
			"start_day": v.Month.StartDay,
			"last_day":  v.Month.LastDay,
			"today":     newTodayView(v),
		}
		if v.Published {
			resp["entries"] = v.Month.Entries
		} else {
			resp["publish_on"] = v.Month.PublishAt().Format("2006-01-02")
			resp["message"] = "Routine will be published soon"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ExamHandler serves the live paper during the exam window. Outside the
// window it reports the phase only; with a missing or empty bank it still
// reports the slot times so the client countdown runs regardless.
// GET /quiz/exam
func ExamHandler(src quizbank.Source, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := schedule.At(now())
		resp := map[string]any{
			"phase": v.Phase,
			"today": newTodayView(v),
		}
		if v.Phase != schedule.PhaseLive {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		slot := *v.Today
		seed := schedule.PaperSeed(v.Month.Year, v.Month.Month, slot.Day, slot.Subject.ID)
		paper, err := quizbank.Load(r.Context(), src, slot.Subject.File, seed)
		if err != nil {
			// Exam time is authoritative even without content.
			resp["paper"] = nil
			if errors.Is(err, quizbank.ErrNoPapers) {
				resp["message"] = "No papers/sets found in JSON."
			} else {
				resp["message"] = fmt.Sprintf("No question data found for %q.", slot.Subject.Name)
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		stripped := paper.StripAnswers()
		info := fmt.Sprintf("Paper: %s — %d MCQ — %d min", paper.PaperID, len(paper.Questions), int(slot.Duration/time.Minute))
		if paper.Alias != "" {
			info += " — " + paper.Alias
		}
		resp["paper"] = stripped
		resp["paper_info"] = info
		resp["html"] = quizbank.RenderHTML(stripped)
		writeJSON(w, http.StatusOK, resp)
	}
}

type submitRequest struct {
	SubjectID string         `json:"subjectId"`
	Answers   map[string]int `json:"answers"`
	Auto      bool           `json:"auto"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
}

// SubmitHandler accepts a finished attempt: re-derives the day's paper,
// filters the answers against it, scores when the key is complete, records
// the attempt in the event log, and forwards it to the form relay.
// POST /quiz/submit
func SubmitHandler(src quizbank.Source, rc *relay.Client, events *eventlog.Repo, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		if _, ok := schedule.SubjectByID(req.SubjectID); !ok {
			writeErr(w, http.StatusBadRequest, "unknown subject")
			return
		}

		at := now()
		v := schedule.At(at)
		if v.Today == nil || v.Today.Subject.ID != req.SubjectID {
			writeErr(w, http.StatusBadRequest, "no exam scheduled for this subject today")
			return
		}
		slot := *v.Today
		if at.Before(slot.Start) {
			writeErr(w, http.StatusBadRequest, "exam has not started")
			return
		}
		deadline := slot.End
		if req.Auto {
			deadline = deadline.Add(autoGrace)
		}
		if at.After(deadline) {
			writeErr(w, http.StatusBadRequest, "exam is over")
			return
		}

		seed := schedule.PaperSeed(v.Month.Year, v.Month.Month, slot.Day, slot.Subject.ID)
		paper, err := quizbank.Load(r.Context(), src, slot.Subject.File, seed)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "no paper available for this exam")
			return
		}

		answers := quizbank.CollectAnswers(paper, req.Answers)
		score, scored := grading.Score(paper, answers)

		// The session token is the identity of record; the body fields only
		// cover anonymous (cookieless) deployments.
		name, email := req.Name, req.Email
		if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
			name, email = claims.Name, claims.Email
		}

		sub := relay.Submission{
			SubjectID:    slot.Subject.ID,
			SubjectName:  slot.Subject.Name,
			PaperID:      paper.PaperID,
			Alias:        paper.Alias,
			Answers:      answers,
			Auto:         req.Auto,
			StudentName:  name,
			StudentEmail: email,
			Timestamp:    at,
		}
		if scored {
			sub.Score = &score
		}

		// Log first: the relay is fire-and-forget, the log is not.
		key := uuid.NewString()
		data, _ := json.Marshal(sub)
		if err := events.Append(r.Context(), eventlog.TypeSubmissionRelayed, key, string(data)); err != nil {
			writeErr(w, http.StatusInternalServerError, "could not record submission")
			return
		}
		if err := rc.Send(r.Context(), sub); err != nil {
			writeErr(w, http.StatusBadGateway, "There was an error sending your answers. Try again — or check your connection.")
			return
		}

		var scoreField any = "N/A"
		if scored {
			scoreField = score
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"id":      key,
			"score":   scoreField,
			"answers": answers,
			"auto":    req.Auto,
		})
	}
}

// SubmissionsHandler lists recent relayed submissions for the instructor.
// GET /admin/submissions
func SubmissionsHandler(events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		fmt.Sscanf(r.URL.Query().Get("limit"), "%d", &limit)
		evs, err := events.Recent(r.Context(), limit)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "could not list submissions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": evs})
	}
}
