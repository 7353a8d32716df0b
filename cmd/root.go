package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/umbrellio/gbot/cmd/configcmd"
	"github.com/umbrellio/gbot/cmd/preview"
	"github.com/umbrellio/gbot/cmd/projects"
	"github.com/umbrellio/gbot/cmd/unapproved"
	"github.com/umbrellio/gbot/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gbot",
	Short: "GitLab review digest bot",
	Long: `Gbot scans GitLab projects for merge requests that are still waiting on
someone and posts a digest to a Slack or Mattermost channel.

It is meant to run from a scheduler: every invocation performs one
pull-compute-push cycle.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	commands := []Command{
		&unapproved.Command{},
		&projects.Command{},
		&preview.Command{},
		&configcmd.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
