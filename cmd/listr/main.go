package main

import (
	"context"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█   █ █▀▀ ▀█▀ █▀█"
	logoText2 = "█▄▄ █ ▄██  █  █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "listr",
	Short: "Business and property listings in the terminal",
}

// applyGradient colors each rune of text along a gradient from a to b.
func applyGradient(text, a, b string) string {
	runes := []rune(text)
	colors := theme.Gradient(a, b, len(runes))
	var sb strings.Builder
	for i, r := range runes {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render(string(r)))
	}
	return sb.String()
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := applyGradient(logoText1, t.Primary, t.Secondary)
	line2 := applyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

listr manages marketplace listings for properties, services, stores and
auto dealerships. Listings are created and edited in a multi-step wizard,
browsed on a detail page with a full-screen image gallery, and stored in an
embedded NATS JetStream server under the data directory.`

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(inquireCmd)
	rootCmd.AddCommand(inquiriesCmd)
	rootCmd.AddCommand(setupCmd)
}
