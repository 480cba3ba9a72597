package main

import (
	"fmt"
	"sort"

	"github.com/go-grit/grit/cmd/ui"
	"github.com/go-grit/grit/pkg/status"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show staged, unstaged, and untracked changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			res, err := r.Status()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			if human {
				printStatusHuman(res)
			} else {
				printStatusPorcelain(res)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&human, "human", false, "render with colored section headers instead of the stable porcelain format")
	return cmd
}

// printStatusPorcelain is the default, script-stable output: two-letter
// index/worktree codes for tracked paths, "?? " for untracked ones —
// the same shape as `git status --porcelain`.
func printStatusPorcelain(res *status.Result) {
	indexCode := make(map[string]byte, len(res.Staged))
	for _, c := range res.Staged {
		indexCode[c.Path.String()] = statusCode(c.Kind)
	}
	workCode := make(map[string]byte, len(res.Unstaged))
	for _, c := range res.Unstaged {
		workCode[c.Path.String()] = statusCode(c.Kind)
	}

	seen := make(map[string]bool, len(indexCode)+len(workCode))
	var paths []string
	for p := range indexCode {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for p := range workCode {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		x, y := indexCode[p], workCode[p]
		if x == 0 {
			x = ' '
		}
		if y == 0 {
			y = ' '
		}
		fmt.Printf("%c%c %s\n", x, y, p)
	}

	for _, u := range res.Untracked {
		p := u.Path.String()
		if u.Dir {
			p += "/"
		}
		fmt.Printf("?? %s\n", p)
	}
}

func statusCode(k status.ChangeKind) byte {
	switch k {
	case status.Added:
		return 'A'
	case status.Modified:
		return 'M'
	case status.Deleted:
		return 'D'
	default:
		return ' '
	}
}

func printStatusHuman(res *status.Result) {
	if res.Clean() {
		fmt.Println(ui.Clean())
		return
	}

	if len(res.Staged) > 0 {
		fmt.Println(ui.Section("Changes to be committed:"))
		for _, c := range res.Staged {
			fmt.Println("  " + renderChange(c))
		}
		fmt.Println()
	}

	if len(res.Unstaged) > 0 {
		fmt.Println(ui.Section("Changes not staged for commit:"))
		for _, c := range res.Unstaged {
			fmt.Println("  " + renderChange(c))
		}
		fmt.Println()
	}

	if len(res.Untracked) > 0 {
		fmt.Println(ui.Section("Untracked files:"))
		for _, u := range res.Untracked {
			p := u.Path.String()
			if u.Dir {
				p += "/"
			}
			fmt.Println("  " + ui.Untracked(p))
		}
		fmt.Println()
	}
}

func renderChange(c status.Change) string {
	switch c.Kind {
	case status.Added:
		return ui.Added(c.Path.String())
	case status.Modified:
		return ui.Modified(c.Path.String())
	case status.Deleted:
		return ui.Deleted(c.Path.String())
	default:
		return c.Path.String()
	}
}
