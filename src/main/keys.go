package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"regionshot/src/config"
	"regionshot/src/keymap"
)

func newKeysCmd(opts *mainOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [filter]",
		Short: "List the key bindings, including the ones from the config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithOptions(opts.loadOptions())
			if err != nil {
				return err
			}
			km, err := cfg.KeyMap()
			if err != nil {
				return err
			}
			return printKeys(cmd.OutOrStdout(), km, strings.Join(args, " "))
		},
	}
}

func printKeys(w io.Writer, km *keymap.KeyMap, filter string) error {
	rows := keymap.Filter(keymap.Cheatsheet(km), filter)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
			fmt.Sprintf("No key bindings match %q.", filter)))
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Keys, r.Action})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Keys", "Action").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newConfigCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), opts.configPath())
			return err
		},
	})
	return cmd
}
