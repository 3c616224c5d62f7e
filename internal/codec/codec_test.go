package codec

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *FieldCodec {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c, err := New("test-field-secret", logger)
	require.NoError(t, err)
	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	for _, plaintext := range []string{
		"555-1",
		"jane@example.com",
		"+371 2000 0000",
		"a",
		strings.Repeat("long ", 100),
	} {
		encoded, err := c.Encode(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encoded)
		assert.True(t, strings.HasPrefix(encoded, "enc1:"))
		assert.Equal(t, plaintext, c.Decode(encoded))
	}
}

func TestEncodeEmptyStaysEmpty(t *testing.T) {
	c := newTestCodec(t)
	encoded, err := c.Encode("")
	require.NoError(t, err)
	assert.Equal(t, "", encoded)
}

func TestEncodeIsRandomized(t *testing.T) {
	c := newTestCodec(t)
	first, err := c.Encode("555-1")
	require.NoError(t, err)
	second, err := c.Encode("555-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDecodePlaintextPassthrough(t *testing.T) {
	c := newTestCodec(t)

	// Values written before encryption was enabled come back unchanged.
	for _, plaintext := range []string{"555-1", "jane@example.com", ""} {
		assert.Equal(t, plaintext, c.Decode(plaintext))
	}
}

func TestDecodeTamperedCiphertextFallsBack(t *testing.T) {
	c := newTestCodec(t)
	encoded, err := c.Encode("555-1")
	require.NoError(t, err)

	flip := "A"
	if encoded[len(encoded)-1] == 'A' {
		flip = "B"
	}
	tampered := encoded[:len(encoded)-1] + flip
	assert.Equal(t, tampered, c.Decode(tampered))

	garbage := "enc1:not-base64!!!"
	assert.Equal(t, garbage, c.Decode(garbage))

	short := "enc1:AAAA"
	assert.Equal(t, short, c.Decode(short))
}

func TestDecodeWrongKeyFallsBack(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	first, err := New("secret-one", logger)
	require.NoError(t, err)
	second, err := New("secret-two", logger)
	require.NoError(t, err)

	encoded, err := first.Encode("555-1")
	require.NoError(t, err)
	assert.Equal(t, encoded, second.Decode(encoded))
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", nil)
	assert.Error(t, err)
}
