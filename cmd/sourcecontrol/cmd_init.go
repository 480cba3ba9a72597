package main

import (
	"fmt"

	"github.com/go-grit/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			r, err := repo.Init(path)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			fmt.Printf("Initialized empty repository in %s\n", r.Root().GitPath())
			return nil
		},
	}
}
