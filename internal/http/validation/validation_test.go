package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin.cl/app/internal/modules/products"
)

func TestFromBindError_ProductForm(t *testing.T) {
	f := &products.Form{ProductID: "p1"}
	f.Apply(products.FormValues{Name: "Shampoo", Price: "-1"})

	err := f.Validate()
	require.Error(t, err)

	got := FromBindError(err, f)
	assert.Equal(t, FieldErrors{
		"precio":      "Ingrese un precio válido (número mayor o igual a 0).",
		"descripcion": "Este campo es obligatorio.",
		"categoria":   "Este campo es obligatorio.",
	}, got)
}

func TestFromBindError_NonValidation(t *testing.T) {
	got := FromBindError(errors.New("multipart: NextPart: EOF"), &products.FormValues{})
	assert.Equal(t, FieldErrors{"_": "Los datos del formulario no son válidos."}, got)
}
