package badge

import (
	"encoding/xml"
	"strings"
	"testing"

	"badge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	tests := []struct {
		status models.Status
		want   string
	}{
		{models.StatusSuccess, "#21BA45"},
		{models.StatusBuilding, "#4fa3e3"},
		{models.StatusWaiting, "#4fa3e3"},
		{models.StatusChecking, "#4fa3e3"},
		{models.StatusFail, "#FF4F60"},
		{models.StatusStopped, "#FF4F60"},
		{models.StatusPending, "grey"},
		{models.StatusDisabled, "grey"},
		{models.StatusNeverBuilt, "grey"},
		{models.StatusUnknown, "grey"},
		{models.StatusSkipped, "grey"},
		{models.Status("Exploded"), "grey"},
		{models.Status(""), "grey"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Color(tt.status))
			assert.Equal(t, Color(tt.status), Color(tt.status))
		})
	}
}

func TestFlatRenderer(t *testing.T) {
	renderer := NewFlatRenderer()

	t.Run("should render a well formed svg", func(t *testing.T) {
		svg, err := renderer.Render("CDS", "Success", ColorSuccess)
		require.NoError(t, err)

		body := string(svg)
		assert.True(t, strings.HasPrefix(body, "<svg"))
		assert.Contains(t, body, `fill="#21BA45"`)
		assert.Contains(t, body, ">CDS</text>")
		assert.Contains(t, body, ">Success</text>")
		assert.NoError(t, xml.Unmarshal(svg, new(struct{})))
	})

	t.Run("should size segments from the text", func(t *testing.T) {
		svg, err := renderer.Render("CDS", "Never Built", ColorNeutral)
		require.NoError(t, err)

		assert.Contains(t, string(svg), `width="118"`)
		assert.Contains(t, string(svg), `<rect x="31" width="87"`)
	})

	t.Run("should escape markup", func(t *testing.T) {
		svg, err := renderer.Render("CDS", `<b>&"`, ColorNeutral)
		require.NoError(t, err)

		assert.NotContains(t, string(svg), "<b>")
		assert.Contains(t, string(svg), "&lt;b&gt;&amp;")
		assert.NoError(t, xml.Unmarshal(svg, new(struct{})))
	})
}
