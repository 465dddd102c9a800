package http

import (
	"bytes"
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
	"github.com/alphaquiz/monthlyquiz/internal/rbac"
	"github.com/alphaquiz/monthlyquiz/internal/schedule"
	"github.com/alphaquiz/monthlyquiz/internal/storage"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// subjectFile resolves a requested bank file against the catalog; anything
// not in the catalog is a 404, which also keeps path tricks out of the
// blob store.
func subjectFile(name string) (string, bool) {
	for _, s := range schedule.Subjects {
		if s.File == name {
			return s.File, true
		}
	}
	return "", false
}

// GetBankHandler serves a subject's raw bank JSON.
// GET /quizdata/{file}
func GetBankHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := subjectFile(chi.URLParam(r, "file"))
		if !ok {
			writeErr(w, http.StatusNotFound, "unknown subject file")
			return
		}
		rc, err := bs.Get(quizbank.BlobKey(file))
		if err != nil {
			writeErr(w, http.StatusNotFound, "no data for subject")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = io.Copy(w, rc)
	}
}

// UploadBankHandler replaces a subject's bank. The body must decode and
// contain at least one paper or set; a bank that would render only the
// placeholder is rejected at upload time.
// PUT /quizdata/{file}
func UploadBankHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := subjectFile(chi.URLParam(r, "file"))
		if !ok {
			writeErr(w, http.StatusNotFound, "unknown subject file")
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
		if err != nil {
			writeErr(w, http.StatusBadRequest, "read body")
			return
		}
		b, err := quizbank.Parse(body)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "bank is not valid JSON")
			return
		}
		if len(b.Papers) == 0 && len(b.Sets) == 0 {
			writeErr(w, http.StatusBadRequest, "bank has no papers or sets")
			return
		}
		if _, err := bs.Put(quizbank.BlobKey(file), bytes.NewReader(body)); err != nil {
			writeErr(w, http.StatusInternalServerError, "could not store bank")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": file})
	}
}

// AdminBasicAuth gates the instructor surfaces behind HTTP basic auth with
// a bcrypt password hash. An empty hash disables the surfaces outright.
func AdminBasicAuth(user, passHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || passHash == "" ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="quizd admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(rbac.WithRole(r.Context(), "admin")))
		})
	}
}
