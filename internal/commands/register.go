// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (party, mod, utils)
package commands

import (
	"github.com/JustRunGuild/PartyBotGo/internal/commands/mod"
	partycmd "github.com/JustRunGuild/PartyBotGo/internal/commands/party"
	"github.com/JustRunGuild/PartyBotGo/internal/commands/utils"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Party commands (/party start, adduser, removeuser, template add/delete)
	partycmd.RegisterPartyCommands(client)

	// Moderation commands (/mod warn, warns, removewarn)
	mod.RegisterModCommands(client)

	// Utility commands (/utils ping, status)
	utils.RegisterUtilsCommands(client)
}
