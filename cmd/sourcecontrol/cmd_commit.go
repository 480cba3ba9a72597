package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged changes as a new commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			if message == "" {
				data, readErr := io.ReadAll(os.Stdin)
				if readErr != nil {
					return fmt.Errorf("commit: read message from stdin: %w", readErr)
				}
				message = string(data)
			}
			if message == "" {
				return fmt.Errorf("commit: message required (use -m or pipe one on stdin)")
			}

			result, err := r.Commit(message)
			if err != nil {
				return fmt.Errorf("commit: %w", err)
			}

			marker := ""
			if result.IsRoot {
				marker = "(root-commit) "
			}
			fmt.Printf("[%s%s] %s\n", marker, result.Id.Short(), result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}
