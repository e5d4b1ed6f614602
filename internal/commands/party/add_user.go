package partycmd

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/internal/party"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/bwmarrin/discordgo"
)

// createAddUserCommand creates the /party adduser subcommand
func createAddUserCommand() *discord.Command {
	return discord.NewCommand(
		"adduser",
		"Apunta a un usuario en un puesto (solo staff, dentro del hilo)",
		"party",
		addUserHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a apuntar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "puesto",
			Description: "Número del puesto",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "rol",
			Description: "Rol con el que va (necesario en puestos libres)",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages).RequiresDatabase()
}

// addUserHandler handles the /party adduser command. It must run inside the
// sign-up thread of the party.
func addUserHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		targetUser := ctx.GetUserOption("usuario")
		slot := int(ctx.GetIntOption("puesto"))
		role := ctx.GetStringOption("rol")

		if targetUser == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		mgr := party.Get()
		out, err := mgr.AdminAssign(ctx.Interaction.ChannelID, targetUser.ID, slot, role)
		if err != nil {
			ctx.ReplyEphemeral("❌ " + err.Error())
			return
		}

		switch out.Code {
		case roster.OK:
			ctx.Reply(fmt.Sprintf("✅ %s apuntado en el puesto **%d**.", targetUser.Mention(), out.Slot))
		case roster.NeedsRole:
			ctx.ReplyEphemeral("❌ Ese puesto es libre: indica el `rol` en el comando.")
		case roster.SlotNotFound:
			ctx.ReplyEphemeral(fmt.Sprintf("❌ El puesto **%d** no existe en esta party.", slot))
		case roster.SlotOccupied:
			ctx.ReplyEphemeral(fmt.Sprintf("❌ El puesto **%d** ya está ocupado.", slot))
		default:
			ctx.ReplyEphemeral("❌ No se pudo apuntar al usuario.")
		}
	}()

	return nil
}
