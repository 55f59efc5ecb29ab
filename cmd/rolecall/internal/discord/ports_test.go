package discord_test

import (
	"github.com/mktierney/rolecall"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/bot"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/discord"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/menu"
)

// The live session must satisfy every port the rest of the program
// consumes it through.
var (
	_ bot.Discord    = (*discord.Session)(nil)
	_ menu.Messenger = (*discord.Session)(nil)
	_ rolecall.Guild = (*discord.Session)(nil)
)
