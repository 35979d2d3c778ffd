package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}

	dstPath, err := l.pathFor(in.Key)
	if err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, err
	}

	// a failed transfer must leave the previous object under key intact
	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return PutResult{}, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return PutResult{}, err
	}
	if err := tmp.Close(); err != nil {
		return PutResult{}, err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return PutResult{}, err
	}
	replaced := true
	if _, err := os.Stat(dstPath); errors.Is(err, fs.ErrNotExist) {
		replaced = false
	}
	if err := os.Rename(tmpName, dstPath); err != nil {
		return PutResult{}, err
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + in.Key
	return PutResult{Key: in.Key, URL: url, Replaced: replaced}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	p, err := l.pathFor(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (l *Local) pathFor(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+strings.TrimLeft(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.BaseDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
