package storage

import (
	"context"
	"io"
)

type PutInput struct {
	Key         string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
	// Replaced is set when an object already existed under Key. Drivers
	// that cannot tell report true.
	Replaced bool
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// Attachment is a file picked in an edit form, not yet uploaded.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
