package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColorFGBG(t *testing.T) {
	tests := map[string]Background{
		"":              BackgroundUnknown,
		"15;default":    BackgroundUnknown,
		"15;0":          BackgroundDark,
		"0;15":          BackgroundLight,
		"0;7":           BackgroundLight,
		"15;4":          BackgroundBlue,
		"15;default;12": BackgroundBlue,
		"fg;bg":         BackgroundUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseColorFGBG(raw), raw)
	}
}
