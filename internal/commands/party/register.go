// Package partycmd provides the /party command group: starting sign-up
// parties from saved templates and managing them.
package partycmd

import (
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
)

// RegisterPartyCommands registers all party commands as /party subcommands
func RegisterPartyCommands(client *discord.ExtendedClient) {
	startCmd := createStartCommand()
	addUserCmd := createAddUserCommand()
	removeUserCmd := createRemoveUserCommand()

	group := client.CommandHandler.BuildCommandGroup(
		"party",
		"Gestión de parties e inscripciones",
		startCmd,
		addUserCmd,
		removeUserCmd,
	)

	templateGroup := client.CommandHandler.BuildSubcommandGroup(
		"party",
		"template",
		"Gestión de templates de party",
		createTemplateAddCommand(),
		createTemplateDeleteCommand(),
	)
	group.Options = append(group.Options, templateGroup)

	client.CommandHandler.AddGlobalCommand(group)
}
