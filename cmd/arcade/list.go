package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trampoline-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in the arcade with their IDs.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}
	idCol := lipgloss.NewStyle().Width(idWidth + 2)

	fmt.Println(headerStyle.Render("Available games"))
	fmt.Println()
	fmt.Println("  " + idCol.Render(headerStyle.Render("ID")) + headerStyle.Render("Title"))
	for _, g := range games {
		fmt.Println("  " + idCol.Render(idStyle.Render(g.ID)) + g.Title)
	}
	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
