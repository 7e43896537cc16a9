package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	assert.Equal(t, "#6b50ff", blend(Default.Primary, Default.Accent, 0))
	assert.Equal(t, "#ff60ff", blend(Default.Primary, Default.Accent, 1))
	assert.Equal(t, "#808080", blend("#000000", "#FFFFFF", 0.5))
}

func TestGradientText_KeepsText(t *testing.T) {
	out := GradientText("ab\n\ncde", Default.Primary, Default.Accent)
	assert.Equal(t, "ab\n\ncde", ansi.Strip(out))
}
