package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/lendbook/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow_SumsToTotal(t *testing.T) {
	for _, total := range []int{80, 81, 119, 180} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(80, 0) != nil {
		t.Fatal("LayoutRow(80, 0) should be nil")
	}
}

func TestMetricCardRow_Width(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total receivable", Value: "186,000"},
		{Label: "Pending", Value: "2"},
		{Label: "Paid", Value: "1", Color: theme.Active.Green},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestContentCard_Width(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Debts", "Line 1\nLine 2", 40, true)
	lines := strings.Split(card, "\n")
	if len(lines) != 5 {
		t.Fatalf("card lines = %d, want 5 (border, title, 2 body, border)", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestTabVisualWidth_MatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
			if i < len(Tabs)-1 {
				want += len(tabSeparator)
			}
		}
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: bar width = %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('x'); got != 4 {
		t.Errorf("TabIdxByKey('x') = %d, want 4", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
