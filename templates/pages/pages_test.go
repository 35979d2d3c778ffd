package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin.cl/app/pkg/view"
)

func TestAdminProducts_RendersOneFormPerProduct(t *testing.T) {
	vm := view.AdminProductsPage{
		Section: view.AdminSection{Slug: "cuidado-capilar", Label: "Cuidado capilar"},
		Sections: []view.AdminSection{
			{Slug: "cuidado-capilar", Label: "Cuidado capilar", Active: true},
			{Slug: "cuidado-ropa", Label: "Cuidado de la ropa"},
		},
		Forms: []view.AdminProductForm{
			{ID: "p1", Action: "/admin/productos/cuidado-capilar/p1", Name: "Shampoo <Pro>", Price: "4990", PriceDisplay: "$4,990", Description: "Suave", Category: "cuidado-capilar"},
			{ID: "p2", Action: "/admin/productos/cuidado-capilar/p2", Name: "Acondicionador", Price: "5490", PriceDisplay: "$5,490", Description: "Brillo", Category: "cuidado-capilar"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, AdminProducts(&view.Flash{Kind: view.FlashSuccess, Message: "Listo"}, vm).Render(context.Background(), &buf))
	html := buf.String()

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`enctype="multipart/form-data"`)))
	assert.Contains(t, html, `action="/admin/productos/cuidado-capilar/p1"`)
	assert.Contains(t, html, `Shampoo &lt;Pro&gt;`)
	assert.NotContains(t, html, `Shampoo <Pro>`)
	assert.Contains(t, html, `$4,990`)
	assert.Contains(t, html, `<option value="cuidado-capilar" selected>`)
	assert.Contains(t, html, `name="imagen" type="file"`)
	assert.Contains(t, html, `data-kind="success"`)
}

func TestAdminProducts_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	vm := view.AdminProductsPage{Section: view.AdminSection{Slug: "x", Label: "x"}}
	require.NoError(t, AdminProducts(nil, vm).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No hay productos en esta sección.")
}

func TestError_ShowsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Error(404, "Sección no encontrada.", "rid-1", nil).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "404 Not Found")
	assert.Contains(t, buf.String(), "rid-1")
}
