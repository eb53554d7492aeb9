package curve

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// ReadPolyline reads the vertices of a racing line from CSV with x and y
// columns (case insensitive, other columns are ignored).
func ReadPolyline(r io.Reader) (*Polyline, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", model.ErrInvalidInput, err)
	}
	xIdx, yIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x":
			xIdx = i
		case "y":
			yIdx = i
		}
	}
	if xIdx < 0 || yIdx < 0 {
		return nil, fmt.Errorf("%w: curve needs x and y columns", model.ErrMissingField)
	}
	points := make([]model.Point, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", model.ErrInvalidInput, line, err)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[xIdx]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[yIdx]), 64)
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", model.ErrInvalidInput, line, err)
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return NewPolyline(points)
}

func ReadPolylineFile(path string) (*Polyline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPolyline(f)
}
