package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbdamask/dinebot/pkg/agent"
	"github.com/jbdamask/dinebot/pkg/commands"
	"github.com/jbdamask/dinebot/pkg/history"
	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/ui"
)

func runChatCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	var transcript *history.Transcript
	if !noTranscript {
		transcript, err = history.Open(a.cfg.TranscriptDir, resumeID)
		if err != nil {
			return err
		}
	}

	conv, err := agent.NewConversation(a.resolver, transcript)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := ui.New()
	u.DrawBanner(a.bannerInfo())

	modelID := a.cfg.Model
	for _, m := range llm.SupportedModels {
		if m.APIModel == a.cfg.Model {
			modelID = m.ID
			break
		}
	}
	cmds := commands.NewDefaultRegistry(nil, commands.NewModelCommand(modelID, a.switchModel))

	chatLoop(ctx, u, conv, cmds)
	if id := conv.SessionID(); id != "" {
		u.Notice("Resume with: dinebot chat --resume " + id)
	}
	return nil
}

func (a *app) bannerInfo() ui.BannerInfo {
	restaurants, err := a.store.Restaurants()
	if err != nil {
		a.log.WithError(err).Warn("failed to read restaurants")
	}
	return ui.BannerInfo{
		Version:     version,
		Model:       a.cfg.Model,
		Offline:     a.cfg.Offline(),
		Restaurants: len(restaurants),
	}
}

// chatLoop reads lines until exit, quit, end of input or cancellation.
func chatLoop(ctx context.Context, u *ui.UI, conv *agent.Conversation, cmds *commands.Registry) {
	for ctx.Err() == nil {
		line := u.Prompt("You: ")
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			u.Print("Goodbye!")
			return
		}

		if name, ok := commands.Parse(line); ok {
			runSlashCommand(u, conv, cmds, name)
			continue
		}

		reply := u.Think(ctx, func(ctx context.Context) string {
			return conv.Send(ctx, line)
		})
		if reply != "" {
			u.Reply(reply)
		}
	}
}

func runSlashCommand(u *ui.UI, conv *agent.Conversation, cmds *commands.Registry, name string) {
	if name == "" {
		name = u.PickCommand(commandInfos(cmds))
		if name == "" {
			return
		}
	}

	cmd, ok := cmds.Get(name)
	if !ok {
		u.Notice("Unknown command /" + name + ". Type /help for a list.")
		return
	}

	if mc, ok := cmd.(*commands.ModelCommand); ok && !u.Plain() {
		pickModel(u, mc)
		return
	}

	out, err := cmd.Execute(conv)
	if err != nil {
		u.Error(err)
		return
	}
	u.Notice(out)
}

func pickModel(u *ui.UI, mc *commands.ModelCommand) {
	options := mc.GetModels()
	infos := make([]ui.ModelInfo, len(options))
	for i, o := range options {
		infos[i] = ui.ModelInfo{
			ID:          o.ID,
			Name:        o.Name,
			Provider:    o.Provider,
			Description: o.Description,
			IsCurrent:   o.IsCurrent,
		}
	}

	selected := u.PickModel(infos)
	if selected == "" || selected == mc.CurrentModel() {
		return
	}
	if err := mc.SetModel(selected); err != nil {
		u.Error(err)
		return
	}
	u.Notice("Switched to " + selected)
}

func commandInfos(cmds *commands.Registry) []ui.CommandInfo {
	list := cmds.List()
	infos := make([]ui.CommandInfo, len(list))
	for i, c := range list {
		infos[i] = ui.CommandInfo{Name: c.Name(), Description: c.Description()}
	}
	return infos
}
