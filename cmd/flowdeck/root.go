package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/flowdeck/internal/app"
)

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	token      string
	env        string
	logFile    string
	logLevel   string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath:  f.configPath,
		Token:       f.token,
		Environment: f.env,
		LogFile:     f.logFile,
		LogLevel:    f.logLevel,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "flowdeck",
		Short: "Terminal dashboard for cloud workflow flows",
		Long: `flowdeck browses environments, flows, runs, trigger history and
connections of a workflow automation service, and runs, enables, disables,
deletes, cancels and resubmits them from the keyboard.

The bearer token is taken from --token, then FLOWDECK_TOKEN, then the
token_file config key; on a terminal flowdeck asks for it otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/flowdeck/config.toml)")
	pf.StringVar(&flags.token, "token", "", "bearer token, sent as the Authorization header")
	pf.StringVar(&flags.env, "env", "", "environment name to open")
	pf.StringVar(&flags.logFile, "log-file", "", `log destination; "-" for stderr`)
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newFlowsCmd(flags))
	return cmd
}
