package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/hierarchy"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [hierarchy.toml]",
		Short: "Check a hierarchy file and summarize its tiers",
		Long: `Check a hierarchy file and summarize its tiers.

Structural problems (missing or duplicate ids, duplicate tier numbers) are
errors. Orphan leaves, whose tier number matches no tier, are reported as
warnings; they are never drawn. Use --strict to treat them as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail if there are orphan leaves")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, strict bool) error {
	h, err := loadHierarchy(ctx, input)
	if err != nil {
		return err
	}

	printSuccess("%s is valid", input)
	printKeyValue("Root", h.RootLabel)
	printKeyValue("Tiers", strconv.Itoa(len(h.Tiers)))
	printKeyValue("Leaves", strconv.Itoa(len(h.Leaves)))
	printNewline()
	fmt.Println(tierTable(h))

	orphans := h.Orphans()
	if len(orphans) == 0 {
		return nil
	}
	printNewline()
	printWarning("%d orphan leaves", len(orphans))
	for _, l := range orphans {
		printDetail("%s (%s) references tier %d", l.ID, l.Code, l.Tier)
	}
	if strict {
		return fmt.Errorf("%d orphan leaves", len(orphans))
	}
	return nil
}

// tierTable renders one row per tier: id, number, label, leaf count.
func tierTable(h *hierarchy.Hierarchy) string {
	rows := make([][]string, len(h.Tiers))
	for i, t := range h.Tiers {
		label := t.Label
		if t.Icon != "" {
			label = t.Icon + " " + label
		}
		rows[i] = []string{t.ID, strconv.Itoa(h.NumberOf(i)), label, strconv.Itoa(len(h.LeavesOf(i)))}
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tier", "No.", "Label", "Leaves").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 0 {
				return cell.Foreground(colorCyan)
			}
			return cell
		}).
		Render()
}
