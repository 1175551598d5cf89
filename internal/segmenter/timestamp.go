package segmenter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
//
// Every field is truncated, never rounded. The float is first converted to its
// shortest decimal form so 0.29 becomes 290ms rather than 289ms. Hours grow
// past two digits for inputs of 100h or more. Negative and NaN inputs are
// outside the contract.
func FormatTimestamp(seconds float64) string {
	totalMillis := decimal.NewFromFloat(seconds).Mul(thousand).Truncate(0).IntPart()
	if totalMillis < 0 {
		totalMillis = 0
	}
	millis := totalMillis % 1000
	totalSeconds := totalMillis / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
