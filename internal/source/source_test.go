package source

import (
	"testing"
	"time"

	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeValidate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		dr      DateRange
		wantErr bool
	}{
		{
			name: "valid range",
			dr:   DateRange{From: day(2024, 6, 1), To: day(2024, 6, 10)},
		},
		{
			name: "single day",
			dr:   DateRange{From: day(2024, 6, 1)},
		},
		{
			name: "from today",
			dr:   DateRange{From: day(2024, 6, 15)},
		},
		{
			name: "from exactly 90 days ago",
			dr:   DateRange{From: day(2024, 3, 17)},
		},
		{
			name:    "missing start date",
			dr:      DateRange{},
			wantErr: true,
		},
		{
			name:    "start date in the future",
			dr:      DateRange{From: day(2024, 6, 16)},
			wantErr: true,
		},
		{
			name:    "start date older than 90 days",
			dr:      DateRange{From: day(2024, 3, 16)},
			wantErr: true,
		},
		{
			name:    "end date before start date",
			dr:      DateRange{From: day(2024, 6, 10), To: day(2024, 6, 1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dr.Validate(now)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidDateRange)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDateRangeValidateAcrossSpringForward(t *testing.T) {
	// US clocks sprang forward on 2024-03-10, so the 91 calendar days from
	// Jan 1 to Apr 1 span only 91*24-1 wall hours. The age limit counts
	// calendar days: 91 is still rejected, 90 still allowed.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	now := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	assert.Equal(t, 91, daysBetween(time.Date(2024, 1, 1, 0, 0, 0, 0, loc), now))

	tooOld := DateRange{From: time.Date(2024, 1, 1, 0, 0, 0, 0, loc)}
	err = tooOld.Validate(now)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)

	oldest := DateRange{From: time.Date(2024, 1, 2, 0, 0, 0, 0, loc)}
	require.NoError(t, oldest.Validate(now))
}

func TestDateRangeBounds(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("explicit end date", func(t *testing.T) {
		dr := DateRange{From: from, To: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}
		lo, hi := dr.Bounds()
		assert.Equal(t, from, lo)
		assert.Equal(t, time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC), hi)
	})

	t.Run("zero end date means the start day", func(t *testing.T) {
		dr := DateRange{From: from}
		lo, hi := dr.Bounds()
		assert.Equal(t, from, lo)
		assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), hi)
	})
}

func TestDateRangeContains(t *testing.T) {
	dr := DateRange{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, dr.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dr.Contains(time.Date(2024, 6, 5, 13, 30, 0, 0, time.UTC)))
	assert.True(t, dr.Contains(time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, dr.Contains(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, dr.Contains(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dr.Contains(time.Time{}))
}

func TestDateRangeUnbounded(t *testing.T) {
	var dr DateRange
	assert.True(t, dr.Unbounded())
	assert.True(t, dr.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dr.Contains(time.Time{}))

	bounded := DateRange{From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, bounded.Unbounded())
	assert.Error(t, dr.Validate(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
		"reports must name a start date")
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{path: "orders.json", want: KindJSON},
		{path: "/data/Export.JSON", want: KindJSON},
		{path: "orders.csv", want: KindCSV},
		{path: "orders.db", want: KindSQLite},
		{path: "orders.sqlite", want: KindSQLite},
		{path: "orders.sqlite3", want: KindSQLite},
		{path: "orders.xlsx", wantErr: true},
		{path: "orders", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, err := KindForPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestMerge(t *testing.T) {
	batchA := []model.Order{
		{SRID: "s1", ProductID: 1},
		{SRID: "s2", ProductID: 2},
		{ProductID: 3}, // no srid
	}
	batchB := []model.Order{
		{SRID: "s2", ProductID: 22}, // duplicate, dropped
		{SRID: "s4", ProductID: 4},
		{ProductID: 5}, // no srid, kept alongside the other anonymous order
	}

	merged := Merge(batchA, batchB)
	require.Len(t, merged, 5)

	var ids []int64
	for _, order := range merged {
		ids = append(ids, order.ProductID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, nil))
}
