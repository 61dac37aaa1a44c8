package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/pkg/theme"
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				t, err := theme.Get(name)
				if err != nil {
					return err
				}
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(t.Background)).Render("   ")
				for _, col := range t.Palette {
					swatch += lipgloss.NewStyle().Background(lipgloss.Color(col)).Render(" ")
				}
				fmt.Println(StyleHighlight.Width(16).Render(name) + " " + swatch + " " + StyleDim.Render(t.Background))
			}
			return nil
		},
	}
}
