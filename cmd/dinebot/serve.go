package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jbdamask/dinebot/pkg/server"
	"github.com/jbdamask/dinebot/pkg/session"
	"github.com/jbdamask/dinebot/pkg/store"
)

func runAskCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	reply := a.resolver.Reply(cmd.Context(), strings.Join(args, " "), nil)
	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	var sessions session.Store = session.NewMemoryStore()
	if a.cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(a.cfg.RedisURL, session.DefaultTTL)
		if err != nil {
			return err
		}
		sessions = rs
	}
	defer sessions.Close()

	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(a.resolver, a.dispatcher, a.store, sessions,
		server.WithLogger(a.log),
		server.WithTranscripts(a.cfg.TranscriptDir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, a.cfg.Addr)
}

func runReservationsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	reservations, err := a.store.Reservations()
	if err != nil {
		return err
	}
	if reservations == nil {
		reservations = []store.Reservation{}
	}
	return printJSON(cmd, reservations)
}

func runToolsCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()
	return printJSON(cmd, a.dispatcher.Registry().List())
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
