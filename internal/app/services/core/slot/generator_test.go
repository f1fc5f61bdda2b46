package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval time.Duration
		want     []string
	}{
		{name: "three minute slots drop the trailing partial slot", start: "09:00", end: "09:09", interval: 3 * time.Minute, want: []string{"09:00", "09:03", "09:06"}},
		{name: "exact fit", start: "09:00", end: "10:00", interval: 30 * time.Minute, want: []string{"09:00", "09:30"}},
		{name: "partial last slot is dropped", start: "09:00", end: "09:50", interval: 20 * time.Minute, want: []string{"09:00", "09:20"}},
		{name: "window shorter than one slot", start: "09:00", end: "09:02", interval: 3 * time.Minute, want: []string{}},
		{name: "empty window", start: "09:00", end: "09:00", interval: 3 * time.Minute, want: []string{}},
		{name: "inverted window", start: "17:00", end: "09:00", interval: 3 * time.Minute, want: []string{}},
		{name: "dotted clock", start: "9.00", end: "9.06", interval: 3 * time.Minute, want: []string{"09:00", "09:03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(tt.start, tt.end, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	first, err := GenerateSlots("08:00", "12:00", 15*time.Minute)
	require.NoError(t, err)
	second, err := GenerateSlots("08:00", "12:00", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	_, err := GenerateSlots("25:00", "26:00", time.Minute)
	assert.Error(t, err)

	_, err = GenerateSlots("09:00", "nope", time.Minute)
	assert.Error(t, err)

	_, err = GenerateSlots("09:00", "10:00", 30*time.Second)
	assert.Error(t, err)
}

func TestIsValidSlot(t *testing.T) {
	assert.True(t, IsValidSlot("09:00", "09:09", 3*time.Minute, "09:03"))
	assert.True(t, IsValidSlot("09:00", "09:09", 3*time.Minute, "9:06"))
	assert.False(t, IsValidSlot("09:00", "09:09", 3*time.Minute, "09:09"))
	assert.False(t, IsValidSlot("09:00", "09:09", 3*time.Minute, "09:04"))
	assert.False(t, IsValidSlot("09:00", "09:09", 3*time.Minute, "garbage"))
}

func TestAvailableSlots(t *testing.T) {
	got, err := AvailableSlots("09:00", "09:12", 3*time.Minute, []string{"09:03", "09:09", "11:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:06"}, got)
}

func TestNormalizeLabel(t *testing.T) {
	label, ok := NormalizeLabel("9:05")
	assert.True(t, ok)
	assert.Equal(t, "09:05", label)

	_, ok = NormalizeLabel("9")
	assert.False(t, ok)
}
