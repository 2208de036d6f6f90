package components

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/theme"
)

// Casers keep state between calls, so each label gets a fresh one.
func upperLabel(s string) string { return cases.Upper(language.Und).String(s) }

func titleLabel(s string) string { return cases.Title(language.English).String(s) }

// formatChips prints an amount with thousands separators, switching to SI
// suffixes from ten million up so badges keep a bounded width.
func formatChips(amount int64) string {
	if amount >= 10_000_000 || amount <= -10_000_000 {
		return strings.ReplaceAll(humanize.SIWithDigits(float64(amount), 1, ""), " ", "")
	}
	return humanize.Comma(amount)
}

// displayName truncates a player name to maxCells terminal cells, which
// also bounds wide CJK names sensibly on the pod.
func displayName(name string, maxCells int) string {
	return runewidth.Truncate(strings.TrimSpace(name), maxCells, "…")
}

func actionLabel(action string) string {
	if action == "allin" {
		return "All-in"
	}
	return titleLabel(action)
}

// fitFont shrinks spec until text fits in maxW, never below minSize.
func fitFont(m render.TextMeasurer, text string, spec theme.FontSpec, maxW, minSize float64) theme.FontSpec {
	if m == nil || maxW <= 0 {
		return spec
	}
	for spec.Size > minSize {
		w, _ := m.Measure(text, spec)
		if w <= maxW {
			return spec
		}
		spec.Size *= 0.9
	}
	if spec.Size < minSize {
		spec.Size = minSize
	}
	return spec
}

// chipBreakdown splits amount into at most max chips, largest
// denominations first.
func chipBreakdown(amount int64, max int) []int64 {
	var out []int64
	remaining := amount
	for i := len(theme.Denominations) - 1; i >= 0 && remaining > 0 && len(out) < max; i-- {
		d := theme.Denominations[i]
		for remaining >= d && len(out) < max {
			out = append(out, d)
			remaining -= d
		}
	}
	if len(out) == 0 && amount > 0 {
		out = append(out, theme.Denominations[0])
	}
	return out
}

func itoa(v int) string { return strconv.Itoa(v) }
