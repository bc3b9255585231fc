package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusVerified, "VERIFIED"},
		{StatusMismatch, "MISMATCH"},
		{StatusNoProducts, "NO_PRODUCTS"},
		{StatusNoData, "NO_DATA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.status))
			assert.True(t, tt.status.Valid())
		})
	}
}

func TestStatusValid_Unknown(t *testing.T) {
	t.Parallel()
	assert.False(t, Status("").Valid())
	assert.False(t, Status("verified").Valid())
}

func TestBatchStatsAdd(t *testing.T) {
	t.Parallel()

	var s BatchStats
	for _, st := range []Status{StatusVerified, StatusVerified, StatusMismatch, StatusNoData, StatusNoProducts} {
		s.Add(Outcome{Status: st})
	}

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Verified)
	assert.Equal(t, 1, s.Mismatches)
	assert.Equal(t, 1, s.NoData)
	assert.Equal(t, 1, s.NoProducts)
	assert.Equal(t, 0, s.Malformed)
}

func TestPairMalformed(t *testing.T) {
	t.Parallel()

	assert.False(t, Pair{Name: "Serap", Product: "Kakao Ecuador"}.Malformed())
	assert.True(t, Pair{Name: "", Product: "Kakao Ecuador"}.Malformed())
	assert.True(t, Pair{Name: "Serap", Product: "  "}.Malformed())
	assert.True(t, Pair{}.Malformed())
}
