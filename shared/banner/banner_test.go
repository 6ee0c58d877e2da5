package banner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/shared/console"
)

func TestDrawIncludesTitleAndVersion(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	Draw(&buf, model.VersionInfo{Version: "1.4.0"})

	out := buf.String()
	assert.Contains(t, out, titleLines[0])
	assert.Contains(t, out, "1.4.0")
}

func TestTitleColor(t *testing.T) {
	t.Setenv(ColorEnv, "")
	assert.Equal(t, titleColors["orange"], titleColor(console.BackgroundBlue))
	assert.Equal(t, titleColors["navy"], titleColor(console.BackgroundLight))
	assert.Equal(t, titleColors["green"], titleColor(console.BackgroundUnknown))

	t.Setenv(ColorEnv, "Teal")
	assert.Equal(t, titleColors["teal"], titleColor(console.BackgroundBlue))
}

func TestWriteCentered(t *testing.T) {
	var buf bytes.Buffer
	writeCentered(&buf, []string{"abcd"}, 10)
	assert.Equal(t, "   abcd\n", buf.String())

	buf.Reset()
	writeCentered(&buf, []string{strings.Repeat("x", 20)}, 10)
	assert.Equal(t, strings.Repeat("x", 20)+"\n", buf.String())
}
