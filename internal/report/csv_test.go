package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/Kashikuroni/wb-abc/internal/abc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFormatterWrite(t *testing.T) {
	r := New(sampleItems(), sampleRange(), nil, abc.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Write(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"SKU-RED-M", "1234567", "4600000000017", "Платья", "Vera",
		"A", "8", "8000.00", "80.00", "80.00",
	}, records[1])
	assert.Equal(t, []string{
		"SKU-BLUE-S", "7654321", "4600000000024", "Футболки", "Vera",
		"C", "2", "2000.00", "20.00", "100.00",
	}, records[2])
}

func TestCSVFormatterWriteEmpty(t *testing.T) {
	r := New(nil, sampleRange(), nil, abc.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Write(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
	assert.Equal(t, csvHeader, records[0])
}
