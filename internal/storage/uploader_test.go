package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix, filename, want string
	}{
		{"productos", "Shampoo.png", "productos/shampoo.png"},
		{"/productos/", "Foto Nueva.JPG", "productos/foto-nueva.jpg"},
		{"productos", `C:\fakepath\detergente.webp`, "productos/detergente.webp"},
		{"productos", "../../etc/x.gif", "productos/x.gif"},
		{"", "a.jpeg", "a.jpeg"},
	}
	for _, tc := range cases {
		got, err := ObjectKey(tc.prefix, tc.filename)
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.want, got, tc.filename)
	}

	_, err := ObjectKey("productos", "malware.exe")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = ObjectKey("productos", "sin-extension")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// chunkReader returns at most n bytes per Read.
type chunkReader struct {
	r io.Reader
	n int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

func TestUploader_UploadWritesUnderPrefixAndReportsProgress(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(NewLocal(dir, "/uploads"), "local", DefaultPrefix, nil)

	body := bytes.Repeat([]byte("a"), 1000)
	var got []Progress
	res, err := u.Upload(context.Background(), Attachment{
		Filename:    "Champú.png",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        &chunkReader{r: bytes.NewReader(body), n: 250},
	}, func(p Progress) { got = append(got, p) })
	require.NoError(t, err)

	assert.Equal(t, "productos/champu.png", res.Key)
	assert.Equal(t, "/uploads/productos/champu.png", res.URL)
	assert.Equal(t, int64(1000), res.Bytes)

	onDisk, err := os.ReadFile(filepath.Join(dir, "productos", "champu.png"))
	require.NoError(t, err)
	assert.Equal(t, body, onDisk)

	require.Len(t, got, 4)
	assert.Equal(t, []float64{25, 50, 75, 100}, []float64{got[0].Percent, got[1].Percent, got[2].Percent, got[3].Percent})
	assert.Equal(t, int64(1000), got[3].Transferred)
	assert.Equal(t, int64(1000), got[3].Total)
}

func TestUploader_UnknownSizeCompletesAtHundred(t *testing.T) {
	u := NewUploader(NewLocal(t.TempDir(), "/uploads"), "local", DefaultPrefix, nil)

	var last Progress
	_, err := u.Upload(context.Background(), Attachment{
		Filename: "a.gif",
		Body:     strings.NewReader("GIF89a"),
	}, func(p Progress) { last = p })
	require.NoError(t, err)
	assert.Equal(t, 100.0, last.Percent)
	assert.Equal(t, int64(6), last.Total)
}

type failingStore struct{ err error }

func (f failingStore) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 2))
	return PutResult{}, f.err
}

func (f failingStore) Delete(ctx context.Context, key string) error { return nil }

func TestUploader_TransferErrorIsReturned(t *testing.T) {
	boom := errors.New("storage/retry-limit-exceeded")
	u := NewUploader(failingStore{err: boom}, "s3", DefaultPrefix, nil)

	var got []Progress
	res, err := u.Upload(context.Background(), Attachment{
		Filename: "foto.jpg",
		Size:     10,
		Body:     strings.NewReader("0123456789"),
	}, func(p Progress) { got = append(got, p) })

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "productos/foto.jpg")
	assert.Empty(t, res.URL)
	for _, p := range got {
		assert.Less(t, p.Percent, 100.0)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestUploader_BodyReadErrorIsReturned(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(NewLocal(dir, "/uploads"), "local", DefaultPrefix, nil)

	_, err := u.Upload(context.Background(), Attachment{Filename: "foto.jpg", Size: 10, Body: errReader{}}, nil)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "productos", "foto.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploader_CancelledContext(t *testing.T) {
	u := NewUploader(NewLocal(t.TempDir(), "/uploads"), "local", DefaultPrefix, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.Upload(ctx, Attachment{Filename: "foto.jpg", Body: strings.NewReader("x")}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploader_RejectsUnsupportedType(t *testing.T) {
	u := NewUploader(NewLocal(t.TempDir(), "/uploads"), "local", DefaultPrefix, nil)

	_, err := u.Upload(context.Background(), Attachment{Filename: "doc.pdf", Body: strings.NewReader("%PDF")}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
