// Command voyagent runs the travel assistant service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voyagent/voyagent"
	"github.com/voyagent/voyagent/config"
	"github.com/voyagent/voyagent/executor"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "voyagent",
		Short:         "Accessible travel assistant service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newChatCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app, err := voyagent.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

// newChatCmd runs a single turn from the terminal, handy for smoke testing
// a config without standing up a client.
func newChatCmd() *cobra.Command {
	var configPath, sessionID, userID string
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Run one conversation turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app, err := voyagent.New(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Chat(context.Background(), executor.Input{
				SessionID: sessionID,
				UserID:    userID,
				Message:   args[0],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n(session %s)\n",
				result.AgentID, result.Response, result.SessionID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to continue")
	cmd.Flags().StringVar(&userID, "user", "", "user id for personalization")
	return cmd
}
