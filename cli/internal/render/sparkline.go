// ABOUTME: Sparkline renders mini trend charts using block characters
// ABOUTME: Used for the 48-slot daily power curve

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a compact trend visualization
// values: slice of values to display (most recent last)
// width: number of characters to render (will sample/pad as needed)
// color: optional color for the sparkline
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}

	return style.Render(string(result))
}

// SparklineWithThreshold colors blocks at or above threshold with alertColor
func SparklineWithThreshold(values []float64, width int, threshold float64, okColor, alertColor lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	var b strings.Builder
	for _, v := range sampled {
		color := okColor
		if v >= threshold {
			color = alertColor
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(valueToBlock(v, lo, hi))))
	}
	return b.String()
}

// bounds scales from zero so an all-equal positive curve renders full height
func bounds(values []float64) (lo, hi float64) {
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// sampleValues resamples the values slice to the target width
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)

	if len(values) < width {
		// Pad with zeros at the beginning
		copy(result[width-len(values):], values)
	} else {
		// Keep each bucket's maximum so short peaks stay visible
		ratio := float64(len(values)) / float64(width)
		for i := 0; i < width; i++ {
			start := int(float64(i) * ratio)
			end := int(float64(i+1) * ratio)
			if end <= start {
				end = start + 1
			}
			result[i] = values[start]
			for _, v := range values[start:min(end, len(values))] {
				result[i] = max(result[i], v)
			}
		}
	}

	return result
}

// valueToBlock converts a value to a block character based on its position in the range
func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[0]
	}

	normalized := (value - lo) / (hi - lo)

	idx := int(normalized * float64(len(SparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(SparklineBlocks) {
		idx = len(SparklineBlocks) - 1
	}

	return SparklineBlocks[idx]
}
