package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/hooponomics-service/internal/config"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
)

const (
	appName    = "hooponomics-service"
	appVersion = "dev"
)

// cli carries state shared by the subcommands once the root has loaded it.
type cli struct {
	out    io.Writer
	cfg    config.Config
	logger *slog.Logger
	asJSON bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "hooponomics",
		Short:         "NBA player market value explorer",
		Long:          "Looks up predicted market value and surplus value for NBA players and teams, and serves the HTTP API, dashboard and MCP tools.",
		Version:       appVersion,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.cfg = config.Load()
			c.logger = logging.NewLogger(logging.Config{
				Level:   c.cfg.Log.Level,
				Format:  c.cfg.Log.Format,
				Service: appName,
				Version: appVersion,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		newServeCmd(c),
		newPlayerCmd(c),
		newSimilarCmd(c),
		newTeamCmd(c),
		newTeamsCmd(c),
		newRankedCmd(c),
	)
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
