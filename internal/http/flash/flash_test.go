package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin.cl/app/pkg/view"
)

func TestCodec_EncodeDecode(t *testing.T) {
	c := NewCodec([]byte("secreto"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Guardado"})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Guardado", f.Message)
}

func TestCodec_DecodeRejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secreto"), "flash", false)
	other := NewCodec([]byte("otro"), "flash", false)

	v, err := other.Encode(view.Flash{Kind: view.FlashError, Message: "x"})
	require.NoError(t, err)
	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	for _, bad := range []string{"", "abc", "a.b.c"} {
		_, err = c.Decode(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}

	empty, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)
	_, err = c.Decode(empty)
	assert.ErrorIs(t, err, ErrInvalid)
}
