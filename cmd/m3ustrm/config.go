package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/m3ustrm/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management",
		Annotations: skipConfig,
	}
	configCmd.AddCommand(newConfigTestCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigTestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates config.toml syntax, required fields and environment variable substitution without running a sync.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				p, err := ctx.configPath()
				if err != nil {
					return err
				}
				path = p
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Validating %s...\n\n", path)

			cfg, err := config.Load(path)
			if err != nil {
				var configErr *config.ConfigError
				if errors.As(err, &configErr) {
					printConfigErrors(out, configErr)
					return errors.New("configuration invalid")
				}
				return fmt.Errorf("failed to load config: %w", err)
			}

			printConfigSummary(out, cfg)
			if warns := cfg.Warnings(); len(warns) > 0 {
				fmt.Fprintln(out, "\nWarnings:")
				for _, w := range warns {
					fmt.Fprintf(out, "  - %s\n", w)
				}
			}
			fmt.Fprintln(out, "\nConfiguration valid!")
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Playlist:   %s\n", cfg.Playlist.Path)
	fmt.Fprintf(w, "  Series:     %s\n", strings.Join(cfg.Groups.Series, ", "))
	fmt.Fprintf(w, "  Movies:     %s\n", strings.Join(cfg.Groups.Movies, ", "))
	fmt.Fprintf(w, "  Live:       %s\n", strings.Join(cfg.Groups.Live, ", "))
	if cfg.Live.KeyByTVGID {
		fmt.Fprintln(w, "  Live keys:  tvg-id")
	}
	if cfg.Selection.Path != "" {
		fmt.Fprintf(w, "  Selection:  %s\n", cfg.Selection.Path)
	}
	fmt.Fprintf(w, "  Database:   %s\n", cfg.State.Database)
	fmt.Fprintf(w, "  Interval:   %s\n", cfg.Schedule.Interval)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
}
