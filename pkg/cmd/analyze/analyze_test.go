//nolint:thelper,funlen // ok for tests
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/config"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// writeRun writes a run with two laps along a straight of 100m.
// Lap 1 is driven at 10 m/s, lap 2 at 20 m/s.
func writeRun(t *testing.T, dir, name string) string {
	var b strings.Builder
	b.WriteString("TimeStamp,xPosition,yPosition,Velocity,BPE,Throttle,Steering,dist1,delta,laps\n")
	ts := 0.0
	for lap, speed := range []float64{10, 20} {
		for i := 0; i <= 20; i++ {
			step, dt := 5.0, 5/speed
			if i == 0 {
				step, dt = 0, 0
			}
			ts += dt
			fmt.Fprintf(&b, "%g,%d,0,%g,0,100,0,%g,%g,%d\n", ts, i*5, speed, step, dt, lap+1)
		}
		ts += 1
	}
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(b.String()), 0o600))
	return file
}

func setup(t *testing.T) (run string) {
	dir := t.TempDir()
	curveFile := filepath.Join(dir, "curve.csv")
	require.NoError(t, os.WriteFile(curveFile, []byte("x,y\n0,0\n100,0\n"), 0o600))
	config.CurveFile = curveFile
	config.ProfileFile = ""
	t.Cleanup(func() { config.CurveFile = "" })
	return writeRun(t, dir, "run1.csv")
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := NewAnalyzeCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSmoothnessCmd(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "smoothness", "-o", "json", run)
	require.NoError(t, err)

	var rows []struct {
		Lap      int     `json:"lap"`
		Driver   string  `json:"driver"`
		Run      string  `json:"run"`
		LapTime  float64 `json:"lapTime"`
		Throttle float64 `json:"throttleHarshness"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Lap)
	assert.Equal(t, "Unknown", rows[0].Driver)
	assert.Equal(t, "run1", rows[0].Run)
	assert.InDelta(t, 10, rows[0].LapTime, 1e-9)
	assert.InDelta(t, 5, rows[1].LapTime, 1e-9)
	assert.InDelta(t, 0, rows[0].Throttle, 1e-9)
}

func TestSmoothnessCmd_Text(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "smoothness", "--driver", "Alice", run)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "LAP"))
	assert.Contains(t, lines[1], "Alice")
}

func TestDeltaCmd(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "delta", "-o", "json", "--lap-a", "1", "--lap-b", "2", "--gates", "11", run)
	require.NoError(t, err)

	var rows []struct {
		Distance  float64 `json:"distance"`
		TimeDelta float64 `json:"timeDelta"`
		Leader    string  `json:"leader"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 11)
	assert.Equal(t, "Tie", rows[0].Leader)
	last := rows[len(rows)-1]
	assert.InDelta(t, 100, last.Distance, 1e-3)
	assert.InDelta(t, 5, last.TimeDelta, 1e-9)
	assert.Equal(t, "B", last.Leader)
}

func TestSectorsCmd(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "sectors", "-o", "json", run)
	require.NoError(t, err)

	var rows []struct {
		Lap    int       `json:"lap"`
		Times  []float64 `json:"times"`
		Status []string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Times, 3)
	assert.Equal(t, []string{"other", "other", "other"}, rows[0].Status)
	assert.Equal(t, []string{"best", "best", "best"}, rows[1].Status)

	out, err = execute(t, "sectors", "-o", "json", "--microsectors", run)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows[0].Times, 30)
}

func TestSectorsCmd_Compare(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "sectors", "-o", "json", "--lap-a", "1", "--lap-b", "2", run)
	require.NoError(t, err)

	var r struct {
		LapA    int      `json:"lapA"`
		LapB    int      `json:"lapB"`
		Leaders []string `json:"leaders"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []string{"B", "B", "B"}, r.Leaders)

	out, err = execute(t, "sectors", "--lap-a", "2", "--lap-b", "1", run)
	require.NoError(t, err)
	assert.Contains(t, out, "FASTER")
	assert.NotContains(t, out, "tie")
}

func TestBrakingCmd_NoTurns(t *testing.T) {
	run := setup(t)
	out, err := execute(t, "braking", "-o", "json", run)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestCmd_Errors(t *testing.T) {
	run := setup(t)
	tests := []struct {
		name    string
		prepare func()
		args    []string
		wantErr error
	}{
		{
			"no curve", func() { config.CurveFile = "" },
			[]string{"smoothness", run}, model.ErrConfiguration,
		},
		{
			"unknown lap", func() {},
			[]string{"delta", "--lap-a", "1", "--lap-b", "7", run}, model.ErrInvalidInput,
		},
		{
			"unknown turn", func() {},
			[]string{"delta", "--lap-a", "1", "--lap-b", "2", "--turn", "T9", run}, model.ErrInvalidInput,
		},
		{
			"unknown braking lap", func() {},
			[]string{"braking", "--laps", "3", run}, model.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curveFile := config.CurveFile
			defer func() { config.CurveFile = curveFile }()
			tt.prepare()
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
