package partycmd

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/internal/party"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/bwmarrin/discordgo"
)

// createRemoveUserCommand creates the /party removeuser subcommand
func createRemoveUserCommand() *discord.Command {
	return discord.NewCommand(
		"removeuser",
		"Desapunta a un usuario de la party (solo staff, dentro del hilo)",
		"party",
		removeUserHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a desapuntar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages).RequiresDatabase()
}

// removeUserHandler handles the /party removeuser command
func removeUserHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		targetUser := ctx.GetUserOption("usuario")
		if targetUser == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		mgr := party.Get()
		out, err := mgr.Release(ctx.Interaction.ChannelID, targetUser.ID)
		if err != nil {
			ctx.ReplyEphemeral("❌ " + err.Error())
			return
		}

		switch out.Code {
		case roster.OK:
			ctx.Reply(fmt.Sprintf("✅ %s desapuntado del puesto **%d**.", targetUser.Mention(), out.Slot))
		case roster.NotSignedUp:
			ctx.ReplyEphemeral(fmt.Sprintf("❌ %s no está apuntado en esta party.", targetUser.Mention()))
		default:
			ctx.ReplyEphemeral("❌ No se pudo desapuntar al usuario.")
		}
	}()

	return nil
}
