package admin

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalogadmin.cl/app/internal/config"
	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/internal/http/middleware"
	"catalogadmin.cl/app/internal/http/render"
	"catalogadmin.cl/app/internal/http/validation"
	"catalogadmin.cl/app/internal/modules/products"
	"catalogadmin.cl/app/internal/shared/apperr"
	"catalogadmin.cl/app/internal/storage"
	"catalogadmin.cl/app/pkg/view"
	"catalogadmin.cl/app/templates/pages"
)

const (
	basePath = "/admin/productos"

	msgSectionNotFound = "Sección no encontrada."
	msgProductNotFound = "Producto no encontrado."
	msgLoadFailed      = "No se pudieron cargar los productos."
	msgTooLarge        = "La imagen supera el tamaño máximo permitido."
	msgBadRequest      = "Los datos del formulario no son válidos."
	msgUnsupported     = "Formato de imagen no soportado. Use PNG, JPG, WEBP o GIF."
	msgUploadFailed    = "No se pudo subir la imagen. Intente nuevamente."
	msgStoreFailed     = "No se pudo guardar el producto. Intente nuevamente."
	msgUnknownCategory = "Seleccione una sección existente."
)

const defaultMaxUpload = 8 << 20

type ProductsHandler struct {
	Catalog        products.Catalog
	Uploader       products.ImageUploader
	Sections       config.Sections
	Flash          *flash.Codec
	Logger         *slog.Logger
	MaxUploadBytes int64
}

func NewProductsHandler(catalog products.Catalog, uploader products.ImageUploader, sections config.Sections, codec *flash.Codec, logger *slog.Logger) *ProductsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductsHandler{
		Catalog:        catalog,
		Uploader:       uploader,
		Sections:       sections,
		Flash:          codec,
		Logger:         logger,
		MaxUploadBytes: defaultMaxUpload,
	}
}

// Index lists the configured sections.
func (h *ProductsHandler) Index(c *gin.Context) {
	sections := h.sectionLinks("")
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"secciones": sections})
		return
	}
	render.Component(c, http.StatusOK, pages.AdminSections(middleware.GetFlash(c), sections))
}

// List renders the edit forms of every product in the route's section.
func (h *ProductsHandler) List(c *gin.Context) {
	sec, ok := h.Sections.Lookup(c.Param("seccion"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr(msgSectionNotFound))
		return
	}

	ed := products.NewEditor(h.Catalog, h.Uploader, h.Logger)
	if err := ed.Load(c.Request.Context(), sec.Slug); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(msgLoadFailed, err))
		return
	}

	vm := h.page(sec, ed)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, vm)
		return
	}
	render.Component(c, http.StatusOK, pages.AdminProducts(middleware.GetFlash(c), vm))
}

// Submit handles one product form: fields plus an optional "imagen" file.
func (h *ProductsHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	sec, ok := h.Sections.Lookup(c.Param("seccion"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr(msgSectionNotFound))
		return
	}
	id := c.Param("id")
	back := basePath + "/" + sec.Slug

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes())

	var in products.FormValues
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, back, bindError(err))
		return
	}
	if cat := strings.TrimSpace(in.Category); cat != "" {
		if _, ok := h.Sections.Lookup(cat); !ok {
			h.fail(c, back, apperr.InvalidErr(products.AlertInvalid, map[string]string{"categoria": msgUnknownCategory}))
			return
		}
	}

	att, closeFn, err := attachment(c)
	if err != nil {
		h.fail(c, back, bindError(err))
		return
	}
	defer closeFn()

	ed := products.NewEditor(h.Catalog, h.Uploader, h.Logger)
	if err := ed.Load(ctx, sec.Slug); err != nil {
		h.fail(c, back, apperr.UpstreamErr(msgLoadFailed, err))
		return
	}

	res, err := ed.Submit(ctx, id, in, att, func(p storage.Progress) {
		h.Logger.LogAttrs(ctx, slog.LevelDebug, "upload_progress",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("product_id", id),
			slog.Float64("percent", p.Percent),
			slog.Int64("transferred", p.Transferred),
		)
	})
	if err != nil {
		h.fail(c, back, submitError(err))
		return
	}

	if middleware.WantsJSON(c) {
		out := gin.H{
			"alert":    res.Alert,
			"producto": productForm(sec.Slug, products.NewForm(res.Product), res.Product),
		}
		if res.Upload != nil {
			out["imagen"] = gin.H{"key": res.Upload.Key, "url": res.Upload.URL, "bytes": res.Upload.Bytes}
		}
		c.JSON(http.StatusOK, out)
		return
	}
	render.RedirectWithFlash(c, h.Flash, back, view.FlashSuccess, res.Alert)
}

// fail reports err as JSON or through the error page, except that form
// errors in the HTML flow go back to the section with an error flash.
func (h *ProductsHandler) fail(c *gin.Context, back string, err *apperr.AppError) {
	if middleware.WantsJSON(c) || h.Flash == nil || err.Kind == apperr.NotFound || err.Kind == apperr.Internal {
		middleware.Fail(c, err)
		return
	}
	h.Logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "product_submit_rejected",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("kind", string(err.Kind)),
		slog.Any("err", err),
	)
	render.RedirectWithFlash(c, h.Flash, back, view.FlashError, err.PublicMsg)
}

func (h *ProductsHandler) maxBytes() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return defaultMaxUpload
}

func (h *ProductsHandler) page(sec config.Section, ed *products.Editor) view.AdminProductsPage {
	vm := view.AdminProductsPage{
		Section:  view.AdminSection{Slug: sec.Slug, Label: sec.Label, Active: true},
		Sections: h.sectionLinks(sec.Slug),
		Forms:    make([]view.AdminProductForm, 0, len(ed.Products())),
	}
	for _, p := range ed.Products() {
		f, ok := ed.Form(p.ID)
		if !ok {
			continue
		}
		vm.Forms = append(vm.Forms, productForm(sec.Slug, f, p))
	}
	return vm
}

func (h *ProductsHandler) sectionLinks(active string) []view.AdminSection {
	out := make([]view.AdminSection, 0, len(h.Sections.Items))
	for _, s := range h.Sections.Items {
		label := s.Label
		if label == "" {
			label = s.Slug
		}
		out = append(out, view.AdminSection{Slug: s.Slug, Label: label, Active: s.Slug == active})
	}
	return out
}

func productForm(section string, f *products.Form, p products.Product) view.AdminProductForm {
	return view.AdminProductForm{
		ID:           f.ProductID,
		Action:       basePath + "/" + section + "/" + f.ProductID,
		Name:         f.Name,
		Price:        f.Price,
		PriceDisplay: view.FormatCLP(p.Price),
		Description:  f.Description,
		Category:     f.Category,
		ImageURL:     p.ImageURL,
	}
}

// attachment opens the optional "imagen" file. closeFn is always safe to call.
func attachment(c *gin.Context) (*storage.Attachment, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("imagen")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	return openAttachment(fh)
}

func openAttachment(fh *multipart.FileHeader) (*storage.Attachment, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	att := &storage.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return att, func() { _ = f.Close() }, nil
}

func bindError(err error) *apperr.AppError {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperr.TooLargeErr(msgTooLarge)
	}
	return apperr.InvalidErr(msgBadRequest, nil)
}

func submitError(err error) *apperr.AppError {
	var ve *products.ValidationError
	switch {
	case errors.As(err, &ve):
		return apperr.InvalidErr(products.AlertInvalid, validation.FromBindError(ve.Err, &products.Form{}))
	case errors.Is(err, products.ErrFormNotFound):
		return apperr.NotFoundErr(msgProductNotFound)
	case errors.Is(err, storage.ErrUnsupportedType):
		return apperr.InvalidErr(msgUnsupported, map[string]string{"imagen": msgUnsupported})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr(msgProductNotFound)
	case errors.Is(err, products.ErrUploadFailed):
		return apperr.UpstreamErr(msgUploadFailed, err)
	case errors.Is(err, products.ErrStoreFailed):
		return apperr.UpstreamErr(msgStoreFailed, err)
	default:
		return apperr.Wrap(err)
	}
}
