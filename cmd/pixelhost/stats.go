package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelhost/internal/telemetry"
)

var flagStatsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded run statistics",
	Long: `Display recent runs and per-simulation aggregates from the
run-stats database.

In a terminal the recent runs are shown in a scrollable table;
piped output falls back to plain text.

Examples:
  pixelhost stats
  pixelhost stats --limit 50
  pixelhost stats --db ./runs.db`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 20, "Number of recent runs to show")
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := telemetry.Open(cfg.Telemetry.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run-stats database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	records, err := store.RecentRuns(flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	summaries, err := store.Summaries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving summaries: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Host something with 'pixelhost run <id>' first.")
		return
	}

	printSummaries(summaries)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		m := newStatsModel(records)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Plain fallback for pipes
	fmt.Printf("  %-10s  %-8s  %-8s  %-10s  %-9s  %-9s  %s\n",
		"Sim", "Display", "Frames", "Sim time", "Worst ms", "Underruns", "Date")
	for _, r := range records {
		fmt.Printf("  %-10s  %-8s  %-8d  %-10.1f  %-9.1f  %-9d  %s\n",
			r.SimID, r.Display, r.Frames, r.SimSeconds, r.MaxFrameMillis,
			r.UnderrunWarnings, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummaries(summaries []telemetry.SimSummary) {
	fmt.Println("Per-simulation totals:")
	fmt.Println()
	fmt.Printf("  %-10s  %-5s  %-10s  %-10s  %-9s  %s\n",
		"Sim", "Runs", "Frames", "Sim time", "Worst ms", "Underruns")
	for _, s := range summaries {
		fmt.Printf("  %-10s  %-5d  %-10d  %-10.1f  %-9.1f  %d\n",
			s.SimID, s.Runs, s.TotalFrames, s.TotalSimSeconds, s.WorstFrameMillis, s.UnderrunWarnings)
	}
	fmt.Println()
}

// statsModel is a minimal Bubble Tea model around a runs table.
type statsModel struct {
	table table.Model
}

func newStatsModel(records []telemetry.RunRecord) statsModel {
	columns := []table.Column{
		{Title: "Sim", Width: 12},
		{Title: "Display", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "Sim time", Width: 9},
		{Title: "Worst ms", Width: 9},
		{Title: "Underruns", Width: 9},
		{Title: "Reloads", Width: 7},
		{Title: "Date", Width: 16},
	}

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.SimID,
			r.Display,
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.1fs", r.SimSeconds),
			fmt.Sprintf("%.1f", r.MaxFrameMillis),
			fmt.Sprintf("%d", r.UnderrunWarnings),
			fmt.Sprintf("%d", r.Reloads),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	height := min(len(rows)+1, 16)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return statsModel{table: t}
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m statsModel) View() string {
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("up/down scroll - q quit")
	return m.table.View() + "\n" + help + "\n"
}
