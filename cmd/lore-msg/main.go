// Command lore-msg inspects the Lore diagnostic message catalog: it lists
// the registered templates and renders them with sample arguments.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lore/msg"
)

var noColor bool

func main() {
	root := &cobra.Command{
		Use:          "lore-msg",
		Short:        "Inspect the Lore diagnostic message catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(listCommand())
	root.AddCommand(formatCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered message templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			idColor := color.New(color.FgCyan)
			nameColor := color.New(color.FgWhite, color.Bold)
			fmt.Printf("catalog version %d\n\n", msg.CatalogVersion)
			for _, id := range msg.TemplateIDs() {
				tmpl, err := msg.TemplateString(id)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s\n      %s\n",
					idColor.Sprintf("%4d", int(id)), nameColor.Sprint(id.String()), tmpl)
			}
			return nil
		},
	}
}

func formatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format <id-or-name> [arg0 [arg1 [arg2]]]",
		Short: "Render a message template with the given arguments",
		Args:  cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			text, err := msg.Format(id, args[1:]...)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

func resolveID(arg string) (msg.TemplateID, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return msg.TemplateID(n), nil
	}
	if id, ok := msg.LookupName(arg); ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown template %q", arg)
}
