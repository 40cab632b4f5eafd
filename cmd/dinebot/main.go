package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

// Flag values shared by the subcommands.
var (
	configPath   string
	resumeID     string
	noTranscript bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dinebot",
		Short:         "Restaurant search and reservation assistant",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChatCommand,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default ./dinebot.yaml if present)")

	chat := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat (default)",
		Args:  cobra.NoArgs,
		RunE:  runChatCommand,
	}
	for _, c := range []*cobra.Command{root, chat} {
		c.Flags().StringVar(&resumeID, "resume", "", "continue the transcript with this session id")
		c.Flags().BoolVar(&noTranscript, "no-transcript", false, "do not record a transcript")
	}

	ask := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Resolve a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAskCommand,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCommand,
	}

	reservations := &cobra.Command{
		Use:   "reservations",
		Short: "Inspect stored reservations",
	}
	reservations.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all reservations as JSON",
		Args:  cobra.NoArgs,
		RunE:  runReservationsList,
	})

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations sent to the model",
		Args:  cobra.NoArgs,
		RunE:  runToolsCommand,
	}

	root.AddCommand(chat, ask, serve, reservations, toolsCmd)
	return root
}
