package storage

import "io"

// BlobStore holds the site's opaque files: question bank JSON under
// quizdata/ and published static assets.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	List(prefix string) ([]string, error)
}
