package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kashikuroni/wb-abc/internal/model"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon},
		{name: "error", format: FormatError, icon: ErrorIcon},
		{name: "warning", format: FormatWarning, icon: WarningIcon},
		{name: "info", format: FormatInfo, icon: InfoIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("orders loaded")
			assert.Contains(t, got, tt.icon)
			assert.Contains(t, got, "orders loaded")
		})
	}
}

func TestBoldStyleKeepsText(t *testing.T) {
	assert.Contains(t, BoldStyle.Render("Sources:"), "Sources:")
}

func TestFormatCategory(t *testing.T) {
	for _, category := range []model.ABCCategory{model.CategoryA, model.CategoryB, model.CategoryC} {
		assert.Contains(t, FormatCategory(category), string(category))
	}
}

func TestRenderBox(t *testing.T) {
	box := RenderBox("Summary", "10 products")
	assert.Contains(t, box, "Summary")
	assert.Contains(t, box, "10 products")
	assert.Contains(t, box, "╭")
}
