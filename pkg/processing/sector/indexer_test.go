//nolint:thelper,funlen // ok for tests
package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gotassert "gotest.tools/v3/assert"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/testsupport/basedata"
)

func TestSegmentation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		seg     Segmentation
		wantErr bool
	}{
		{"default", DefaultSegmentation, false},
		{"one sector", Segmentation{Sectors: 1, Microsectors: 7}, false},
		{"zero sectors", Segmentation{Sectors: 0, Microsectors: 30}, true},
		{"negative microsectors", Segmentation{Sectors: 3, Microsectors: -30}, true},
		{"not a multiple", Segmentation{Sectors: 4, Microsectors: 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrConfiguration)
				_, err = NewIndexer(tt.seg)
				assert.ErrorIs(t, err, model.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		param float64
		lo    float64
		hi    float64
		n     int
		want  int
	}{
		{"start", 0, 0, 30, 3, 1},
		{"inside first", 9.99, 0, 30, 3, 1},
		{"inside second", 10.5, 0, 30, 3, 2},
		{"end of domain", 30, 0, 30, 3, 3},
		{"beyond end", 31, 0, 30, 3, 3},
		{"before start", -1, 0, 30, 3, 1},
		{"shifted domain", 15, 10, 20, 10, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(tt.param, tt.lo, tt.hi, tt.n))
		})
	}
}

func TestBoundaries_Nested(t *testing.T) {
	c := basedata.OvalCurve(7.3, 97)
	for _, seg := range []Segmentation{
		DefaultSegmentation,
		{Sectors: 7, Microsectors: 70},
		{Sectors: 11, Microsectors: 33},
	} {
		ix, err := NewIndexer(seg)
		require.NoError(t, err)
		sectors := ix.SectorBoundaries(c)
		micro := ix.MicrosectorBoundaries(c)
		gotassert.Equal(t, len(sectors), seg.Sectors+1)
		gotassert.Equal(t, len(micro), seg.Microsectors+1)
		for k, b := range sectors {
			gotassert.Equal(t, b, micro[k*seg.PerSector()], "sector boundary %d", k)
		}
	}
}

func TestIndexer_AssignSectors(t *testing.T) {
	c := basedata.StraightCurve(30)
	ix, err := NewIndexer(DefaultSegmentation)
	require.NoError(t, err)

	samples := []model.Sample{
		{Param: 0, HasParam: true},
		{Param: 0.5, HasParam: true},
		{Param: 9.5, HasParam: true},
		{Param: 10.5, HasParam: true},
		{Param: 29.99, HasParam: true},
		{Param: 30, HasParam: true},
	}
	got, err := ix.AssignSectors(samples, c)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 10, 11, 30, 30},
		[]int{got[0].MicrosectorID, got[1].MicrosectorID, got[2].MicrosectorID,
			got[3].MicrosectorID, got[4].MicrosectorID, got[5].MicrosectorID})
	assert.Equal(t, []int{1, 1, 1, 2, 3, 3},
		[]int{got[0].SectorID, got[1].SectorID, got[2].SectorID,
			got[3].SectorID, got[4].SectorID, got[5].SectorID})
	assert.Zero(t, samples[5].SectorID, "input must not be modified")

	_, err = ix.AssignSectors([]model.Sample{{Param: 1}}, c)
	assert.ErrorIs(t, err, model.ErrMissingField)
}

func TestIndexer_AssignSectors_Nesting(t *testing.T) {
	c := basedata.OvalCurve(13.7, 50)
	lo, hi := c.Domain()
	ix, err := NewIndexer(Segmentation{Sectors: 3, Microsectors: 30})
	require.NoError(t, err)
	samples := make([]model.Sample, 1000)
	for i := range samples {
		samples[i] = model.Sample{Param: lo + (hi-lo)*float64(i)/999, HasParam: true}
	}
	got, err := ix.AssignSectors(samples, c)
	require.NoError(t, err)
	for _, s := range got {
		assert.Equal(t, (s.MicrosectorID-1)/10+1, s.SectorID)
	}
	assert.Equal(t, 3, got[len(got)-1].SectorID)
	assert.Equal(t, 30, got[len(got)-1].MicrosectorID)
}

func TestIndexer_Label(t *testing.T) {
	c := basedata.StraightCurve(100)
	ix, err := NewIndexer(Segmentation{Sectors: 2, Microsectors: 10})
	require.NoError(t, err)
	lap := basedata.StraightLap(1, "A", 101, 1, 10)
	for i := range lap.Samples {
		lap.Samples[i].HasParam = false
		lap.Samples[i].Position.Y = 0.3 // off the line
	}
	got, err := ix.Label(lap, c, 1001)
	require.NoError(t, err)
	assert.True(t, got.Fields.Has(model.FieldSector|model.FieldParam))
	assert.False(t, lap.Samples[0].HasParam, "input must not be modified")
	for i, s := range got.Samples {
		assert.InDelta(t, float64(i), s.Param, 1e-6)
	}
	assert.Equal(t, 1, got.Samples[0].MicrosectorID)
	assert.Equal(t, 6, got.Samples[55].MicrosectorID)
	assert.Equal(t, 2, got.Samples[55].SectorID)
	assert.Equal(t, 10, got.Samples[100].MicrosectorID)
}

func TestProject_KeepsExistingParams(t *testing.T) {
	c := basedata.StraightCurve(10)
	samples := []model.Sample{
		{Position: model.Position{X: 3}, Param: 7, HasParam: true},
		{Position: model.Position{X: 4}},
	}
	got := Project(samples, c, 11)
	assert.Equal(t, 7.0, got[0].Param)
	assert.InDelta(t, 4.0, got[1].Param, 1e-9)
	assert.True(t, got[1].HasParam)
}
