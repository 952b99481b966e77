package ui

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"qcounts/internal/config"
	"qcounts/internal/domain"
	"qcounts/querycounts"
)

// CountViewer displays the hottest tests of a run in an interactive TUI
type CountViewer struct {
	config *config.Config
}

// NewCountViewer creates a new CountViewer
func NewCountViewer(cfg *config.Config) *CountViewer {
	return &CountViewer{config: cfg}
}

// View displays the run's query counts, hottest test first
func (cv *CountViewer) View(output *domain.RunOutput) error {
	entries := querycounts.TopN(output.Counts, -1)
	if len(entries) == 0 {
		color.Green("✓ No query counts recorded in the last run")
		return nil
	}

	// Create the application
	app := tview.NewApplication()

	// Create list of tests ordered by count (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, entry := range entries {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s [gray](%d)[white]", i+1, entry.TestID, entry.Queries), "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows test id and package)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for count details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerText := fmt.Sprintf(" Query Counts (%d tests, %d queries total) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ",
		len(entries), output.Meta.TotalQueries)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(headerText)

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			entry := entries[index]
			statsView.SetText(cv.formatEntryStats(entry, index+1))
			detailsView.SetText(cv.formatEntryDetails(entry, output.Meta))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatEntryStats formats the stats header for a count entry
func (cv *CountViewer) formatEntryStats(entry domain.TestQueryCount, rank int) string {
	var builder strings.Builder

	pkg := entry.Package
	if pkg == "" {
		pkg = "(package unknown)"
	}

	fmt.Fprintf(&builder, "[cyan]rank:[white] [yellow]#%d[white]  [cyan]package:[white] [yellow]%s[white]\n", rank, pkg)

	return builder.String()
}

// formatEntryDetails formats a count entry for display using tview color tags
func (cv *CountViewer) formatEntryDetails(entry domain.TestQueryCount, meta domain.RunMeta) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[yellow]⚡ Test: %s[white]\n\n", entry.TestID)
	fmt.Fprintf(w, "[cyan]Queries:[white]\t%d\n", entry.Queries)
	if meta.TotalQueries > 0 {
		share := float64(entry.Queries) / float64(meta.TotalQueries) * 100
		fmt.Fprintf(w, "[cyan]Share of run:[white]\t%.1f%%\n", share)
	}
	fmt.Fprintf(w, "\n")

	if len(entry.BySource) > 0 {
		fmt.Fprintf(w, "[yellow]By source:[white]\n")
		sources := make([]string, 0, len(entry.BySource))
		for source := range entry.BySource {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		for _, source := range sources {
			fmt.Fprintf(w, "  %s\t%d\n", source, entry.BySource[source])
		}
	}

	w.Flush()
	return builder.String()
}
