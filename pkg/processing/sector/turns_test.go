//nolint:thelper,funlen // ok for tests
package sector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

func sampleTurns() []model.TurnWindow {
	return []model.TurnWindow{
		{Name: "T1", FirstMicrosector: 3, LastMicrosector: 5},
		{Name: "T2", FirstMicrosector: 12, LastMicrosector: 12},
		{Name: "T3", FirstMicrosector: 28, LastMicrosector: 30},
	}
}

func TestTurnLookup_Find(t *testing.T) {
	tl, err := NewTurnLookup(sampleTurns(), DefaultSegmentation)
	require.NoError(t, err)
	tests := []struct {
		name      string
		ms        int
		wantName  string
		wantIndex int
		wantOk    bool
	}{
		{"before first turn", 2, "", -1, false},
		{"turn entry", 3, "T1", 0, true},
		{"turn exit", 5, "T1", 0, true},
		{"single microsector turn", 12, "T2", 1, true},
		{"last microsector", 30, "T3", 2, true},
		{"unlabelled sample", 0, "", -1, false},
		{"beyond segmentation", 31, "", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tl.Find(tt.ms)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantIndex, tl.Index(tt.ms))
		})
	}
}

func TestTurnLookup_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		turns []model.TurnWindow
	}{
		{"overlap", []model.TurnWindow{
			{Name: "A", FirstMicrosector: 3, LastMicrosector: 6},
			{Name: "B", FirstMicrosector: 6, LastMicrosector: 8},
		}},
		{"inverted", []model.TurnWindow{{Name: "A", FirstMicrosector: 6, LastMicrosector: 3}}},
		{"out of range", []model.TurnWindow{{Name: "A", FirstMicrosector: 29, LastMicrosector: 31}}},
		{"zero id", []model.TurnWindow{{Name: "A", FirstMicrosector: 0, LastMicrosector: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTurnLookup(tt.turns, DefaultSegmentation)
			assert.ErrorIs(t, err, model.ErrConfiguration)
		})
	}
}

func TestTurnLookup_ByName(t *testing.T) {
	tl, err := NewTurnLookup(sampleTurns(), DefaultSegmentation)
	require.NoError(t, err)
	turn, idx, ok := tl.ByName("T2")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 12, turn.FirstMicrosector)
	_, _, ok = tl.ByName("T9")
	assert.False(t, ok)
}

func TestWindow(t *testing.T) {
	samples := []model.Sample{
		{Timestamp: 0, MicrosectorID: 2},
		{Timestamp: 1, MicrosectorID: 3},
		{Timestamp: 2, MicrosectorID: 4},
		{Timestamp: 3, MicrosectorID: 6},
		{Timestamp: 4, MicrosectorID: 5},
	}
	got := Window(samples, sampleTurns()[0])
	want := []model.Sample{samples[1], samples[2], samples[4]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Window() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Window(samples, sampleTurns()[1]))
}
