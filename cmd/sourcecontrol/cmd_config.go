package main

import (
	"fmt"
	"strings"

	"github.com/go-grit/grit/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get or set commit author identity (user.name, user.email)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			mgr := config.NewManager(r.Root())
			level := config.RepositoryLevel
			if user {
				level = config.UserLevel
			}

			key := args[0]
			if len(args) == 1 {
				return showIdentity(mgr, key)
			}
			return setIdentity(mgr, level, key, args[1])
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "write to the user-level config instead of the repository one")
	return cmd
}

func showIdentity(mgr *config.Manager, key string) error {
	identity, err := mgr.Identity()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch key {
	case "user.name":
		fmt.Println(identity.Name)
	case "user.email":
		fmt.Println(identity.Email)
	default:
		return fmt.Errorf("config: unknown key %q (only user.name and user.email are supported)", key)
	}
	return nil
}

func setIdentity(mgr *config.Manager, level config.Level, key, value string) error {
	switch strings.ToLower(key) {
	case "user.name":
		return mgr.Set(level, value, "")
	case "user.email":
		return mgr.Set(level, "", value)
	default:
		return fmt.Errorf("config: unknown key %q (only user.name and user.email are supported)", key)
	}
}
