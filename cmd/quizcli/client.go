package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
	"github.com/alphaquiz/monthlyquiz/internal/schedule"
)

// client talks to quizd. The cookie jar carries the auth_token issued at
// login into the submit call.
type client struct {
	base string
	hc   *http.Client
}

func newClient(base string) *client {
	jar, _ := cookiejar.New(nil)
	return &client{
		base: base,
		hc:   &http.Client{Timeout: 20 * time.Second, Jar: jar},
	}
}

type scheduleResponse struct {
	Published bool             `json:"published"`
	PublishOn string           `json:"publish_on"`
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	StartDay  int              `json:"start_day"`
	LastDay   int              `json:"last_day"`
	Entries   []schedule.Entry `json:"entries"`
}

type todayView struct {
	Day         int              `json:"day"`
	Subject     schedule.Subject `json:"subject"`
	Phase       string           `json:"phase"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	DurationMin int              `json:"duration_min"`
}

type examResponse struct {
	Phase     string          `json:"phase"`
	Today     *todayView      `json:"today"`
	Paper     *quizbank.Paper `json:"paper"`
	PaperInfo string          `json:"paper_info"`
	Message   string          `json:"message"`
}

type submitRequest struct {
	SubjectID string           `json:"subjectId"`
	Answers   quizbank.Answers `json:"answers"`
	Auto      bool             `json:"auto"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
}

type submitResponse struct {
	Success bool             `json:"success"`
	ID      string           `json:"id"`
	Score   any              `json:"score"`
	Answers quizbank.Answers `json:"answers"`
}

func (c *client) schedule(ctx context.Context) (scheduleResponse, error) {
	var out scheduleResponse
	return out, c.getJSON(ctx, "/quiz/schedule", &out)
}

func (c *client) exam(ctx context.Context) (examResponse, error) {
	var out examResponse
	return out, c.getJSON(ctx, "/quiz/exam", &out)
}

func (c *client) login(ctx context.Context, name, email, password string) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	err := c.postJSON(ctx, "/auth/login", map[string]string{
		"name": name, "email": email, "password": password,
	}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("login rejected: %s", out.Error)
	}
	return nil
}

func (c *client) submit(ctx context.Context, req submitRequest) (submitResponse, error) {
	var out submitResponse
	if err := c.postJSON(ctx, "/quiz/submit", req, &out); err != nil {
		return out, err
	}
	if !out.Success {
		return out, fmt.Errorf("submission rejected")
	}
	return out, nil
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 500 {
		return fmt.Errorf("%s: status %d", req.URL.Path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
