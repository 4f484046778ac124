package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPicksPalette(t *testing.T) {
	assert.Equal(t, "dark", For(true).Name)
	assert.Equal(t, "light", For(false).Name)
	assert.NotEqual(t, Light().Background, Dark().Background)
}

func TestNewProgressUsesWidth(t *testing.T) {
	s := NewStyles(Dark())
	prog := s.NewProgress(42)
	assert.Equal(t, 42, prog.Width)
	assert.True(t, prog.ShowPercentage)
	assert.Equal(t, "dark", s.Palette.Name)
}
