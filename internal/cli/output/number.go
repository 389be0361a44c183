package output

import (
	"math"

	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxGrouped is the largest magnitude printed with digit grouping. Beyond it
// int64 conversion loses the value.
const maxGrouped = 1 << 53

// FormatNumber renders v for a human reader in locale. Integral values get
// locale digit grouping; everything else falls back to mathdaddy.FormatValue.
func FormatNumber(locale language.Tag, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > maxGrouped {
		return mathdaddy.FormatValue(v)
	}
	return message.NewPrinter(locale).Sprintf("%d", int64(v))
}

// displayValue is the value as shown in text mode.
func (r *Renderer) displayValue(res *mathdaddy.Result) string {
	if !r.tty {
		return res.Display
	}
	return FormatNumber(r.locale, res.Value)
}
