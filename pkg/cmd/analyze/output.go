package analyze

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/config"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// report is a result that can be printed as table or json
type report interface {
	header() []string
	rows() [][]string
}

// round converts v to a decimal with the configured precision.
// NaN and infinite values are reported as 0.
func round(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(config.Precision)
}

func roundAll(values []float64) []decimal.Decimal {
	ret := make([]decimal.Decimal, len(values))
	for i, v := range values {
		ret[i] = round(v)
	}
	return ret
}

func joinStringers[T fmt.Stringer](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func render(w io.Writer, r report) error {
	switch config.Output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(r.header(), "\t"))
		for _, row := range r.rows() {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", config.Output)
	}
}
