package storage

import "io"

// BlobStore keeps uploaded source documents so their text can be extracted
// and re-extracted later.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Path(key string) string // local path, for extractors that read files
}
