package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyVND formats an amount the way receipts print it.
// Example: 20000 -> "20.000 VNĐ"
func FormatCurrencyVND(amount float64) string {
	integerPart := fmt.Sprintf("%.0f", amount)

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return strings.Join(result, ".") + " VNĐ"
}
