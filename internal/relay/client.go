// Package relay sends finished attempts to the form-relay endpoint that
// mails results to the instructor.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
)

const DefaultEndpoint = "https://api.web3forms.com/submit"

// Submission is one finished attempt. Score nil means no key was available
// and the relay reports "N/A".
type Submission struct {
	SubjectID    string           `json:"subjectId"`
	SubjectName  string           `json:"subjectName"`
	PaperID      string           `json:"paperId"`
	Alias        string           `json:"alias,omitempty"`
	Answers      quizbank.Answers `json:"answers"`
	Score        *int             `json:"score"`
	Auto         bool             `json:"auto"`
	StudentName  string           `json:"studentName"`
	StudentEmail string           `json:"studentEmail"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Client posts submissions, one attempt each, no retries. The request
// timeout matters: a fire-and-forget post with no deadline can hang
// forever on a dead network.
type Client struct {
	Endpoint  string
	AccessKey string
	HTTP      *http.Client
}

func New(accessKey string) *Client {
	return &Client{
		Endpoint:  DefaultEndpoint,
		AccessKey: accessKey,
		HTTP:      &http.Client{Timeout: 20 * time.Second},
	}
}

type envelope struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Content   string `json:"content"`
}

type content struct {
	SubjectID    string           `json:"subjectId"`
	PaperID      string           `json:"paperId"`
	Alias        any              `json:"alias"`
	Answers      quizbank.Answers `json:"answers"`
	Score        any              `json:"score"`
	Auto         bool             `json:"auto"`
	TimestampUTC string           `json:"timestamp_utc"`
}

// Send posts one submission. Only transport-level failure is an error; the
// relay's own JSON verdict is not interpreted beyond being drained.
func (c *Client) Send(ctx context.Context, s Submission) error {
	body, err := c.build(s)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	defer res.Body.Close()
	var verdict struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(res.Body).Decode(&verdict)
	return nil
}

func (c *Client) build(s Submission) ([]byte, error) {
	con := content{
		SubjectID:    s.SubjectID,
		PaperID:      s.PaperID,
		Answers:      s.Answers,
		Score:        "N/A",
		Auto:         s.Auto,
		TimestampUTC: s.Timestamp.UTC().Format(time.RFC3339),
	}
	if s.Alias != "" {
		con.Alias = s.Alias
	}
	if s.Score != nil {
		con.Score = *s.Score
	}
	cj, err := json.MarshalIndent(con, "", "  ")
	if err != nil {
		return nil, err
	}
	name := s.StudentName
	if name == "" {
		name = "Anonymous"
	}
	return json.Marshal(envelope{
		AccessKey: c.AccessKey,
		Subject:   fmt.Sprintf("Exam Submission — %s — %s", s.SubjectName, s.PaperID),
		Name:      name,
		Email:     s.StudentEmail,
		Content:   string(cj),
	})
}
