package flash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewCodec([]byte("test-secret"), "flash", false)

	v, err := c.Encode(Flash{Kind: KindError, Message: "The payment was declined."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, KindError, f.Kind)
	assert.Equal(t, "The payment was declined.", f.Message)
}

func TestDecodeRejectsTamperedPayload(t *testing.T) {
	c := NewCodec([]byte("test-secret"), "flash", false)

	v, err := c.Encode(Flash{Kind: KindNotice, Message: "hello"})
	require.NoError(t, err)

	parts := strings.SplitN(v, ".", 2)
	tampered := parts[0] + "x." + parts[1]

	_, err = c.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	a := NewCodec([]byte("secret-a"), "flash", false)
	b := NewCodec([]byte("secret-b"), "flash", false)

	v, err := a.Encode(Flash{Kind: KindSuccess, Message: "ok"})
	require.NoError(t, err)

	_, err = b.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := NewCodec([]byte("test-secret"), "flash", false)

	for _, v := range []string{"", "no-dot", "a.b.c", "!!!.???"} {
		_, err := c.Decode(v)
		assert.Error(t, err, v)
	}
}

func TestDecodeRejectsEmptyMessage(t *testing.T) {
	c := NewCodec([]byte("test-secret"), "flash", false)

	v, err := c.Encode(Flash{Kind: KindError, Message: "   "})
	require.NoError(t, err)

	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
