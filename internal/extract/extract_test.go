package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlainFile(t *testing.T) {
	text, err := Text("notes.TXT", []byte("ohm's law: V = IR"))
	require.NoError(t, err)
	assert.Equal(t, "ohm's law: V = IR", text)
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text("slides.pptx", []byte("ignored"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Text("noextension", nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRemoveHardcodedImages(t *testing.T) {
	content := "before ![](data:image/png;base64,iVBORw0KGgo=) after"
	assert.Equal(t, "before  after", removeHardcodedImages(content))

	content = "no images here ![diagram](figure1.png)"
	assert.Equal(t, content, removeHardcodedImages(content))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))

	// Rune-safe: never splits a multibyte character.
	s := strings.Repeat("é", 5)
	assert.Equal(t, "éé", Truncate(s, 2))
}
