package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/chromaview/internal/app"
	"github.com/five82/chromaview/internal/chroma"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// newRootCmd builds the command tree. The root command runs the TUI.
func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "chromaview",
		Short:         "Browse Chroma collections in the terminal",
		Long:          "chromaview connects to a Chroma server and lets you browse, create and delete collections and inspect their records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/chromaview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/chromaview/prefs.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default .env)")
	flags.StringVar(&opts.URL, "url", "", "Chroma server URL")
	flags.StringVar(&opts.Tenant, "tenant", "", "tenant name")
	flags.StringVar(&opts.Database, "database", "", "database name")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path")

	root.AddCommand(
		newCollectionsCmd(&opts),
		newResetCmd(&opts),
		newVersionCmd(&opts),
	)
	return root
}

// withEnv runs fn against a freshly set up environment.
func withEnv(opts *app.Options, fn func(env *app.Env) error) error {
	env, err := app.Setup(*opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func newCollectionsCmd(opts *app.Options) *cobra.Command {
	var idsOnly bool
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collections, favorites first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				cols, err := env.ListCollections(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, c := range cols {
					if idsOnly {
						fmt.Fprintln(out, c.ID)
						continue
					}
					mark := " "
					if c.IsFavorite {
						mark = "*"
					}
					fmt.Fprintf(out, "%s %s\t%s\n", mark, c.Name, c.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print only collection ids")
	return cmd
}

func newResetCmd(opts *app.Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every collection in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				p := env.ConnectParams().WithDefaults()
				if !yes {
					ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
						fmt.Sprintf("Reset %s %s/%s? This deletes every collection. [y/N] ", p.URL, p.Tenant, p.Database))
					if err != nil {
						return err
					}
					if !ok {
						return errors.New("reset cancelled")
					}
				}
				if err := env.ResetDatabase(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm prints prompt and reports whether the answer starts with y.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y"), nil
}

func newVersionCmd(opts *app.Options) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the chromaview and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chromaview %s\n", version)
			if offline {
				return nil
			}
			return withEnv(opts, func(env *app.Env) error {
				return printServerVersion(cmd.Context(), out, env)
			})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the server version check")
	return cmd
}

func printServerVersion(ctx context.Context, out io.Writer, env *app.Env) error {
	v, err := env.ServerVersion(ctx)
	if v != "" {
		fmt.Fprintf(out, "chroma %s (minimum %s)\n", v, chroma.MinServerVersion)
	}
	return err
}
