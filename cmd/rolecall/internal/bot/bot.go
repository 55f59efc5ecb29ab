// Package bot glues the message stream, the command router, the role
// service, and the interactive menu together.
package bot

import (
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/mktierney/rolecall"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/command"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/discord"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/menu"
)

var templateHelp = template.Must(template.New("help").Parse(
	`Here's what I can do:
{{ range . }}{{ if not .Hidden }}* {{ .Usage }}: {{ .Description }}
{{ end }}{{ end }}`))

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "bot",
})

// Discord is the outgoing surface the bot needs.
type Discord interface {
	SendMessage(channelID, message string) error
	menu.Messenger
}

type Bot struct {
	svc     *rolecall.Service
	discord Discord
	router  *command.Router
	menus   *menu.Manager
	tasks   []Task
}

func New(svc *rolecall.Service, d Discord, router *command.Router, tasks ...Task) *Bot {
	return &Bot{
		svc:     svc,
		discord: d,
		router:  router,
		menus:   menu.NewManager(),
		tasks:   tasks,
	}
}

// Listen processes messages and component clicks until both streams
// close or ctx is done.
func (b *Bot) Listen(ctx context.Context, messages <-chan discord.Message, clicks <-chan discord.Component) error {
	log.Info("ready to process Discord events")

	b.startTasks(ctx)

	for messages != nil || clicks != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				messages = nil
				continue
			}
			b.handleMessage(ctx, msg)

		case click, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			b.handleClick(ctx, click)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg discord.Message) {
	args, remainder := b.router.Route(msg.Content)
	if args == nil {
		return
	}

	switch a := args.(type) {
	case *command.AddArgs:
		b.handleAdd(ctx, a, msg, remainder)
	case *command.RemoveArgs:
		b.handleRemove(ctx, a, msg, remainder)
	case *command.ListArgs:
		b.handleList(msg)
	case *command.MineArgs:
		b.handleMine(ctx, msg)
	case *command.TopArgs:
		b.handleTop(ctx, msg)
	case *command.MenuArgs:
		b.handleMenu(ctx, msg)
	case *command.HelpArgs:
		b.handleHelp(msg)
	}
}

func (b *Bot) handleClick(ctx context.Context, click discord.Component) {
	logger := log.WithFields(logrus.Fields{
		"guild_id":   click.GuildID,
		"channel_id": click.ChannelID,
		"message_id": click.MessageID,
		"custom_id":  click.CustomID,
		"handler":    "click",
	})

	handled, err := b.menus.Handle(ctx, click.MessageID, menu.Click{
		UserID:   click.UserID,
		UserName: click.User,
		CustomID: click.CustomID,
		Values:   click.Values,
		Ack:      click.Ack,
	})
	if err != nil {
		logger.WithError(err).Error("failed to handle panel click")
		return
	}
	if !handled {
		// A click on a panel from before a restart. Acknowledge it so
		// the client stops spinning.
		if err := click.Ack(); err != nil {
			logger.WithError(err).Error("failed to acknowledge stale click")
		}
	}
}

func (b *Bot) handleAdd(ctx context.Context, args *command.AddArgs, msg discord.Message, content string) {
	logger := b.logger(msg, "add")

	if err := args.ParseArg(content); err != nil {
		if errors.Is(err, command.ErrMissingArgument) {
			b.send(logger, msg.ChannelID, "Usage: add <role>")
			return
		}
		logger.WithError(err).Error("unexpected error from arg parser")
		return
	}

	name, err := b.svc.AddRole(ctx, msg.GuildID, msg.AuthorID, args.Role)
	b.sendResult(logger, msg, args.Role, name, err, rolecall.AddedMessage)
}

func (b *Bot) handleRemove(ctx context.Context, args *command.RemoveArgs, msg discord.Message, content string) {
	logger := b.logger(msg, "remove")

	if err := args.ParseArg(content); err != nil {
		if errors.Is(err, command.ErrMissingArgument) {
			b.send(logger, msg.ChannelID, "Usage: remove <role>")
			return
		}
		logger.WithError(err).Error("unexpected error from arg parser")
		return
	}

	name, err := b.svc.RemoveRole(ctx, msg.GuildID, msg.AuthorID, args.Role)
	b.sendResult(logger, msg, args.Role, name, err, rolecall.RemovedMessage)
}

func (b *Bot) handleList(msg discord.Message) {
	logger := b.logger(msg, "list")
	b.send(logger, msg.ChannelID, rolecall.WhitelistMessage(b.svc.Registry()))
}

func (b *Bot) handleMine(ctx context.Context, msg discord.Message) {
	logger := b.logger(msg, "mine")

	held, err := b.svc.HeldRoles(ctx, msg.GuildID, msg.AuthorID)
	if err != nil {
		logger.WithError(err).Error("failed to look up held roles")
		return
	}

	b.send(logger, msg.ChannelID, rolecall.RolesMessage(b.svc.Registry(), msg.Author, held))
}

func (b *Bot) handleTop(ctx context.Context, msg discord.Message) {
	logger := b.logger(msg, "top")

	board, err := b.svc.Leaderboard(ctx, msg.GuildID)
	if err != nil {
		logger.WithError(err).Error("failed to build leaderboard")
		return
	}

	b.send(logger, msg.ChannelID, rolecall.LeaderboardMessage(b.svc.Registry(), board))
}

func (b *Bot) handleMenu(ctx context.Context, msg discord.Message) {
	logger := b.logger(msg, "menu")

	s, err := menu.Open(ctx, b.svc, b.discord, msg.GuildID, msg.ChannelID, msg.AuthorID, msg.Author)
	if err != nil {
		logger.WithError(err).Error("failed to open role menu")
		return
	}
	b.menus.Track(s)
}

func (b *Bot) handleHelp(msg discord.Message) {
	logger := b.logger(msg, "help")

	var rsp strings.Builder
	if err := templateHelp.Execute(&rsp, b.router.Specs()); err != nil {
		logger.WithError(err).Error("failed to render help text")
		return
	}
	b.send(logger, msg.ChannelID, rsp.String())
}

// sendResult turns an AddRole or RemoveRole outcome into chat text.
// Business failures are reported to the channel; remote failures are
// only logged.
func (b *Bot) sendResult(logger *logrus.Entry, msg discord.Message, requested, name string, err error, success func(rolecall.Registry, string, string) string) {
	reg := b.svc.Registry()

	if err == nil {
		b.send(logger, msg.ChannelID, success(reg, msg.Author, name))
		return
	}

	if text, business := rolecall.ResultMessage(reg, msg.Author, requested, err); business {
		b.send(logger, msg.ChannelID, text)
		return
	}

	logger.WithError(err).Error("role operation failed")
}

func (b *Bot) send(logger *logrus.Entry, channelID, message string) {
	if err := b.discord.SendMessage(channelID, message); err != nil {
		logger.WithError(err).Error("failed to send message to Discord channel")
	}
}

func (b *Bot) logger(msg discord.Message, handler string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"guild_id":   msg.GuildID,
		"channel_id": msg.ChannelID,
		"message_id": msg.ID,
		"handler":    handler,
	})
}
