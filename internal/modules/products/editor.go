package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"catalogadmin.cl/app/internal/monitoring"
	"catalogadmin.cl/app/internal/storage"
)

const (
	AlertUpdated = "La información del producto ha sido actualizada correctamente."
	AlertInvalid = "Por favor, complete todos los campos correctamente."
)

var tracer = otel.Tracer("catalogadmin.cl/app/internal/modules/products")

// ImageUploader is the storage side of a submit.
type ImageUploader interface {
	Upload(ctx context.Context, att storage.Attachment, onProgress storage.ProgressFunc) (storage.UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// Editor holds the products of one section and an edit form per product.
// It is not safe for concurrent use; handlers build one per request.
type Editor struct {
	catalog  Catalog
	uploader ImageUploader
	logger   *slog.Logger

	section  string
	products []Product
	forms    map[string]*Form
}

func NewEditor(catalog Catalog, uploader ImageUploader, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		catalog:  catalog,
		uploader: uploader,
		logger:   logger,
		forms:    map[string]*Form{},
	}
}

func (e *Editor) Section() string { return e.section }

func (e *Editor) Products() []Product {
	out := make([]Product, len(e.products))
	copy(out, e.products)
	return out
}

func (e *Editor) Product(id string) (Product, bool) {
	for _, p := range e.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (e *Editor) Form(id string) (*Form, bool) {
	f, ok := e.forms[id]
	return f, ok
}

// Forms returns the edit forms in product order.
func (e *Editor) Forms() []*Form {
	out := make([]*Form, 0, len(e.products))
	for _, p := range e.products {
		if f, ok := e.forms[p.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Load fetches the products of section and rebuilds every form. On
// failure the previously loaded section stays in place.
func (e *Editor) Load(ctx context.Context, section string) error {
	ctx, span := tracer.Start(ctx, "products.Editor.Load")
	defer span.End()

	section = strings.TrimSpace(section)
	span.SetAttributes(attribute.String("catalog.section", section))
	if section == "" {
		monitoring.TickCatalogLoad("invalid")
		return ErrEmptyCategory
	}

	items, err := e.catalog.ListByCategory(ctx, section)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list products")
		monitoring.TickCatalogLoad("error")
		return fmt.Errorf("load section %q: %w", section, err)
	}

	e.section = section
	e.products = items
	e.initForms()

	span.SetAttributes(attribute.Int("catalog.products", len(items)))
	monitoring.TickCatalogLoad("ok")
	return nil
}

func (e *Editor) initForms() {
	e.forms = make(map[string]*Form, len(e.products))
	for _, p := range e.products {
		e.forms[p.ID] = NewForm(p)
	}
}

type SubmitResult struct {
	Product Product
	Upload  *storage.UploadResult
	Alert   string
}

// Submit validates the form of product id against values and, when valid,
// uploads the optional image and writes the new values to the store and
// to the loaded copy. Nothing changes unless every step succeeds.
func (e *Editor) Submit(ctx context.Context, id string, values FormValues, image *storage.Attachment, onProgress storage.ProgressFunc) (SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "products.Editor.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id), attribute.Bool("product.image", image != nil))

	form, ok := e.forms[id]
	if !ok {
		monitoring.TickProductSubmission("not_found")
		return SubmitResult{}, fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}

	form.Apply(values)
	form.Attach(image)
	if err := form.Validate(); err != nil {
		monitoring.TickProductSubmission("invalid")
		span.SetStatus(codes.Error, "invalid form")
		return SubmitResult{Alert: AlertInvalid}, err
	}
	update, err := form.Update()
	if err != nil {
		monitoring.TickProductSubmission("invalid")
		return SubmitResult{Alert: AlertInvalid}, err
	}

	var uploaded *storage.UploadResult
	if form.Image != nil {
		res, err := e.upload(ctx, *form.Image, onProgress)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upload")
			monitoring.TickProductSubmission("upload_failed")
			return SubmitResult{}, err
		}
		uploaded = &res
		update.ImageURL = res.URL
	}

	if err := e.catalog.Update(ctx, id, update); err != nil {
		if uploaded != nil {
			e.discard(ctx, *uploaded)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store update")
		monitoring.TickProductSubmission("store_failed")
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	p := e.apply(id, update)
	e.forms[id] = NewForm(p)

	monitoring.TickProductSubmission("ok")
	e.logger.LogAttrs(ctx, slog.LevelInfo, "product_updated",
		slog.String("product_id", id),
		slog.String("section", e.section),
		slog.Bool("image", uploaded != nil),
	)
	return SubmitResult{Product: p, Upload: uploaded, Alert: AlertUpdated}, nil
}

func (e *Editor) upload(ctx context.Context, att storage.Attachment, onProgress storage.ProgressFunc) (storage.UploadResult, error) {
	if e.uploader == nil {
		return storage.UploadResult{}, fmt.Errorf("%w: no storage configured", ErrUploadFailed)
	}
	res, err := e.uploader.Upload(ctx, att, onProgress)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return storage.UploadResult{}, err
		}
		return storage.UploadResult{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	return res, nil
}

// discard removes an upload whose store write failed. An object that
// replaced an earlier one under the same key may still be referenced, so
// it is kept and only logged.
func (e *Editor) discard(ctx context.Context, res storage.UploadResult) {
	if res.Replaced {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "image_kept",
			slog.String("key", res.Key),
			slog.String("reason", "key existed before upload"),
		)
		return
	}
	if err := e.uploader.Delete(ctx, res.Key); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "orphan_image",
			slog.String("key", res.Key),
			slog.Any("err", err),
		)
	}
}

// apply copies update onto the loaded product and returns the new copy.
func (e *Editor) apply(id string, u ProductUpdate) Product {
	for i := range e.products {
		p := &e.products[i]
		if p.ID != id {
			continue
		}
		p.Name = u.Name
		p.Price = u.Price
		p.Description = u.Description
		p.Category = u.Category
		if u.ImageURL != "" {
			p.ImageURL = u.ImageURL
		}
		return *p
	}
	return Product{}
}
