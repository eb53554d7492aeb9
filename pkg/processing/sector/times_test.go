//nolint:thelper,funlen // ok for tests
package sector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// timedLap builds a labelled lap visiting the microsectors in order, spending
// durations[i] seconds in microsector i+1.
func timedLap(number int, driver string, durations []float64) *model.Lap {
	samples := []model.Sample{{Timestamp: 0, MicrosectorID: 1}}
	ts := 0.0
	for i, d := range durations {
		ts += d
		samples = append(samples, model.Sample{Timestamp: ts, MicrosectorID: i + 1})
	}
	lap, err := model.NewLap(number, samples,
		model.WithDriver(driver), model.WithFields(model.AllFields|model.FieldSector))
	if err != nil {
		panic(err)
	}
	return lap
}

func TestIndexer_Times(t *testing.T) {
	ix, err := NewIndexer(Segmentation{Sectors: 2, Microsectors: 4})
	require.NoError(t, err)
	lap := timedLap(1, "A", []float64{1, 2, 3, 4})
	got, err := ix.Times(lap)
	require.NoError(t, err)
	want := SegmentTimes{Sectors: []float64{3, 7}, Microsectors: []float64{1, 2, 3, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Times() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, lap.LapTime, got.Sectors[0]+got.Sectors[1])

	lap.Fields = model.AllFields
	_, err = ix.Times(lap)
	assert.ErrorIs(t, err, model.ErrMissingField)

	unlabelled := timedLap(2, "A", []float64{1, 2})
	unlabelled.Samples[1].MicrosectorID = 0
	_, err = ix.Times(unlabelled)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestBests_Status(t *testing.T) {
	ix, err := NewIndexer(Segmentation{Sectors: 2, Microsectors: 4})
	require.NoError(t, err)
	laps := []*model.Lap{
		timedLap(1, "A", []float64{1, 2, 3, 4}),
		timedLap(2, "A", []float64{2, 1, 4, 4}),
		timedLap(3, "B", []float64{1.5, 1.5, 2, 5}),
	}
	lt := make([]LapTimes, len(laps))
	for i, l := range laps {
		times, err := ix.Times(l)
		require.NoError(t, err)
		lt[i] = LapTimes{Lap: l, Times: times}
	}
	bests := ComputeBests(lt)
	assert.Equal(t, []float64{1, 1, 2, 4}, bests.Global.Microsectors)
	assert.Equal(t, []float64{1, 1, 3, 4}, bests.Drivers["A"].Microsectors)

	tests := []struct {
		name         string
		lap          LapTimes
		microsectors bool
		want         []model.SectorStatus
	}{
		{"A lap 1 microsectors", lt[0], true, []model.SectorStatus{
			model.SectorBest, model.SectorOther, model.SectorPersonalBest, model.SectorBest,
		}},
		{"A lap 2 microsectors", lt[1], true, []model.SectorStatus{
			model.SectorOther, model.SectorBest, model.SectorOther, model.SectorBest,
		}},
		{"B microsectors", lt[2], true, []model.SectorStatus{
			model.SectorPersonalBest, model.SectorPersonalBest, model.SectorBest, model.SectorPersonalBest,
		}},
		// sectors: A1 [3,7], A2 [3,8], B [3,7]
		{"A lap 2 sectors", lt[1], false, []model.SectorStatus{
			model.SectorBest, model.SectorOther,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bests.Status(tt.lap, tt.microsectors))
		})
	}
}

func TestCompare(t *testing.T) {
	a := SegmentTimes{Sectors: []float64{3, 7, 5}}
	b := SegmentTimes{Sectors: []float64{4, 6, 5}}
	assert.Equal(t,
		[]model.Leader{model.LeaderA, model.LeaderB, model.LeaderTie},
		Compare(a, b, false))
}
