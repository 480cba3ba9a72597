package main

import (
	"fmt"
	"os"

	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/repo"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "List every blob reachable from a commit or tree (HEAD if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			var id *objects.Id
			if len(args) == 1 {
				parsed, parseErr := objects.ParseId(args[0])
				if parseErr != nil {
					return fmt.Errorf("show: %w", parseErr)
				}
				id = &parsed
			}

			lines, err := r.Show(id)
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}

			if human {
				renderShowHuman(lines)
			} else {
				renderShowPorcelain(lines)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&human, "human", false, "render as an aligned table instead of the stable \"mode hash path\" lines")
	return cmd
}

func renderShowPorcelain(lines []repo.TreeLine) {
	for _, l := range lines {
		fmt.Printf("%s %s %s\n", l.Mode.String(), l.Id.Hex(), l.Path)
	}
}

func renderShowHuman(lines []repo.TreeLine) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Mode", "Object", "Path")
	for _, l := range lines {
		table.Append(l.Mode.String(), l.Id.Short(), l.Path)
	}
	table.Render()
}
