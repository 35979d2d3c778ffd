package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"catalogadmin.cl/app/internal/monitoring"
	"catalogadmin.cl/app/internal/shared/slug"
)

const DefaultPrefix = "productos"

var ErrUnsupportedType = errors.New("unsupported image type")

var tracer = otel.Tracer("catalogadmin.cl/app/internal/storage")

// Progress is emitted while an upload streams to storage.
type Progress struct {
	Transferred int64
	Total       int64
	Percent     float64
}

type ProgressFunc func(Progress)

type UploadResult struct {
	Key      string
	URL      string
	Bytes    int64
	Replaced bool
}

// Uploader writes form attachments under a fixed prefix, keyed by the
// attachment's file name, and reports byte progress.
type Uploader struct {
	store  Storage
	driver string
	prefix string
	logger *slog.Logger
}

func NewUploader(store Storage, driver, prefix string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{store: store, driver: driver, prefix: prefix, logger: logger}
}

func (u *Uploader) Driver() string { return u.driver }

// ObjectKey derives the storage key for an uploaded file name:
// prefix/slug(name)+ext. Only image extensions are accepted.
func ObjectKey(prefix, filename string) (string, error) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	if !allowedExt(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
	name := slug.FromName(strings.TrimSuffix(base, path.Ext(base)))

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name + ext, nil
	}
	return prefix + "/" + name + ext, nil
}

func allowedExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return true
	default:
		return false
	}
}

// Upload streams att to storage. Transfer errors are logged and returned;
// onProgress may be nil.
func (u *Uploader) Upload(ctx context.Context, att Attachment, onProgress ProgressFunc) (UploadResult, error) {
	ctx, span := tracer.Start(ctx, "storage.Upload", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	key, err := ObjectKey(u.prefix, att.Filename)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		monitoring.TickImageUpload(u.driver, "rejected")
		return UploadResult{}, err
	}
	span.SetAttributes(
		attribute.String("storage.driver", u.driver),
		attribute.String("storage.key", key),
		attribute.Int64("storage.size", att.Size),
	)

	pr := &progressReader{ctx: ctx, r: att.Body, total: att.Size, onProgress: onProgress, lastPct: -1}
	res, err := u.store.Put(ctx, pr, PutInput{
		Key:         key,
		Filename:    att.Filename,
		ContentType: att.ContentType,
		Size:        att.Size,
	})
	if err != nil {
		u.logger.LogAttrs(ctx, slog.LevelError, "upload_failed",
			slog.String("driver", u.driver),
			slog.String("key", key),
			slog.Int64("transferred", pr.n),
			slog.Any("err", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		monitoring.TickImageUpload(u.driver, "error")
		return UploadResult{}, fmt.Errorf("upload %s: %w", key, err)
	}
	pr.complete()

	u.logger.LogAttrs(ctx, slog.LevelInfo, "upload_completed",
		slog.String("driver", u.driver),
		slog.String("key", res.Key),
		slog.Int64("bytes", pr.n),
		slog.Bool("replaced", res.Replaced),
	)
	monitoring.TickImageUpload(u.driver, "ok")
	monitoring.AddImageUploadBytes(pr.n)

	return UploadResult{Key: res.Key, URL: res.URL, Bytes: pr.n, Replaced: res.Replaced}, nil
}

func (u *Uploader) Delete(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

type progressReader struct {
	ctx        context.Context
	r          io.Reader
	n          int64
	total      int64
	onProgress ProgressFunc
	lastPct    float64
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(b)
	if n > 0 {
		p.n += int64(n)
		p.emit(false)
	}
	return n, err
}

func (p *progressReader) complete() { p.emit(true) }

func (p *progressReader) emit(done bool) {
	if p.onProgress == nil {
		return
	}
	total := p.total
	if done && total <= 0 {
		total = p.n
	}
	pct := 0.0
	if total > 0 {
		pct = float64(p.n) * 100 / float64(total)
	}
	if pct > 100 {
		pct = 100
	}
	if done {
		pct = 100
	}
	// whole-percent steps only
	if pct < 100 && int(pct) <= int(p.lastPct) {
		return
	}
	if pct == 100 && p.lastPct == 100 {
		return
	}
	p.lastPct = pct
	p.onProgress(Progress{Transferred: p.n, Total: total, Percent: pct})
}
