package quizbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/storage"
)

// ErrUnavailable marks a bank that could not be fetched at all (missing
// file, network failure, non-2xx). Distinct from ErrNoPapers: the bank may
// exist but be empty.
var ErrUnavailable = errors.New("quizbank: bank unavailable")

// Source fetches the raw bank body for a subject file.
type Source interface {
	Fetch(ctx context.Context, file string) ([]byte, error)
}

// BlobSource reads banks from the blob store under quizdata/.
type BlobSource struct {
	Store storage.BlobStore
}

func (s BlobSource) Fetch(ctx context.Context, file string) ([]byte, error) {
	rc, err := s.Store.Get(BlobKey(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// BlobKey maps a subject file to its blob store key.
func BlobKey(file string) string { return "quizdata/" + file }

// HTTPSource fetches banks from a quizd instance (the client-side path).
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) HTTPSource {
	return HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s HTTPSource) Fetch(ctx context.Context, file string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/quizdata/"+file, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

// Load fetches, parses, and deterministically selects the day's paper for a
// subject file. Both failure modes (fetch and empty bank) surface as errors
// so the caller can fall back to the placeholder view.
func Load(ctx context.Context, src Source, file, seed string) (Paper, error) {
	data, err := src.Fetch(ctx, file)
	if err != nil {
		return Paper{}, err
	}
	b, err := Parse(data)
	if err != nil {
		return Paper{}, err
	}
	return b.Pick(seed)
}
