package products

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"catalogadmin.cl/app/internal/storage"
)

// FormValues is what the admin typed into one product form.
type FormValues struct {
	Name        string `form:"nombre" json:"nombre"`
	Price       string `form:"precio" json:"precio"`
	Description string `form:"descripcion" json:"descripcion"`
	Category    string `form:"categoria" json:"categoria"`
}

// Form is the mutable edit state of a single product. It is seeded from
// the product and only written back after Validate passes.
type Form struct {
	ProductID   string              `form:"-" validate:"-"`
	Name        string              `form:"nombre" validate:"required,max=255"`
	Price       string              `form:"precio" validate:"required,price"`
	Description string              `form:"descripcion" validate:"required"`
	Category    string              `form:"categoria" validate:"required,max=64"`
	Image       *storage.Attachment `form:"-" validate:"-"`
}

// maxPrice is the first value that no longer fits DECIMAL(12,2).
var maxPrice = decimal.NewFromInt(10_000_000_000)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative() && d.Round(2).LessThan(maxPrice)
	})
	return v
}

func NewForm(p Product) *Form {
	return &Form{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price.String(),
		Description: p.Description,
		Category:    p.Category,
	}
}

// Apply replaces the form fields with submitted values.
func (f *Form) Apply(v FormValues) {
	f.Name = strings.TrimSpace(v.Name)
	f.Price = strings.TrimSpace(v.Price)
	f.Description = strings.TrimSpace(v.Description)
	f.Category = strings.TrimSpace(v.Category)
}

// Attach sets the pending image. A nil attachment clears it.
func (f *Form) Attach(att *storage.Attachment) { f.Image = att }

func (f *Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &ValidationError{Err: ve}
	}
	return err
}

// Update converts a validated form into store columns.
func (f *Form) Update() (ProductUpdate, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return ProductUpdate{}, fmt.Errorf("parse price %q: %w", f.Price, err)
	}
	return ProductUpdate{
		Name:        f.Name,
		Price:       price.Round(2),
		Description: f.Description,
		Category:    f.Category,
	}, nil
}

// ValidationError reports which form fields failed and on which rule.
type ValidationError struct {
	Err validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "invalid product form: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields maps form field names to the failing rule tag.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Err))
	for _, fe := range e.Err {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
