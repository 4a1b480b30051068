package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Kashikuroni/wb-abc/internal/abc"
	"github.com/Kashikuroni/wb-abc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterWrite(t *testing.T) {
	r := New(sampleItems(), sampleRange(), []string{"orders.json"}, abc.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Write(&buf, r))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Items, 2)
	assert.Equal(t, int64(1234567), decoded.Items[0].ProductID)
	assert.Equal(t, model.CategoryA, decoded.Items[0].Category)
	assert.InDelta(t, 80.0, decoded.ThresholdA, 0.001)
	assert.Equal(t, 2, decoded.Summary.Products)
	assert.Equal(t, []string{"orders.json"}, decoded.Sources)

	// Wire keys stay camelCase like the statistics API.
	assert.Contains(t, buf.String(), `"cumulativeShare"`)
	assert.Contains(t, buf.String(), `"nmId"`)
	assert.Contains(t, buf.String(), `"totalRevenue"`)
}

func TestJSONFormatterWriteEmpty(t *testing.T) {
	r := New(nil, sampleRange(), nil, abc.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Write(&buf, r))

	assert.Contains(t, buf.String(), `"items": []`)
	assert.Contains(t, buf.String(), `"sources": []`)
	assert.NotContains(t, buf.String(), "null")
}
