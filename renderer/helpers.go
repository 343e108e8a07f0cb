// Package renderer formats finplan reports as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/etnz/finplan"
)

// NA is printed in place of a value that cannot be computed.
const NA = "N/A"

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// percent formats a fraction as a percentage, or N/A.
func percent(f float64, ok bool) string {
	if !ok || math.IsNaN(f) {
		return NA
	}
	return finplan.Ratio(f).String()
}

// optional formats an optional number with 'format', or N/A.
func optional(f *float64, format string) string {
	if f == nil {
		return NA
	}
	return fmt.Sprintf(format, *f)
}

// optionalPercent formats an optional fraction as a percentage, or N/A.
func optionalPercent(f *float64) string {
	if f == nil {
		return NA
	}
	return percent(*f, true)
}

// bigNumber formats large amounts with a magnitude suffix, like 3.25T.
func bigNumber(f *float64) string {
	if f == nil {
		return NA
	}
	v := *f
	for _, unit := range []struct {
		suffix string
		scale  float64
	}{{"T", 1e12}, {"B", 1e9}, {"M", 1e6}, {"K", 1e3}} {
		if math.Abs(v) >= unit.scale {
			return fmt.Sprintf("%.2f%s", v/unit.scale, unit.suffix)
		}
	}
	return fmt.Sprintf("%.2f", v)
}

func amount(f float64) string { return finplan.M(f, "").String() }

// reason explains why a lookup has no value.
func reason[T any](l finplan.Lookup[T]) string {
	if l.Err == nil {
		return l.Status.String()
	}
	return fmt.Sprintf("%s: %v", l.Status, l.Err)
}

// cell escapes text for a markdown table cell.
func cell(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ") }

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a one line chart.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(len(sparks)-1)))
		}
		b.WriteRune(sparks[i])
	}
	return b.String()
}

// sample keeps at most n values evenly spread over values, including the last one.
func sample(values []float64, n int) []float64 {
	if len(values) <= n || n < 2 {
		return values
	}
	out := make([]float64, 0, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range n {
		out = append(out, values[int(math.Round(float64(i)*step))])
	}
	return out
}
