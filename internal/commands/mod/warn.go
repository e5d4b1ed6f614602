// Package mod - /mod warn command
package mod

import (
	"fmt"
	"time"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		targetUser := ctx.GetUserOption("usuario")
		reason := ctx.GetStringOption("razon")

		if targetUser == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}
		if reason == "" {
			ctx.ReplyEphemeral("❌ Debes especificar una razón.")
			return
		}
		if targetUser.Bot {
			ctx.ReplyEphemeral("❌ No puedes advertir a un bot.")
			return
		}

		if err := ctx.Defer(); err != nil {
			logger.Error(fmt.Sprintf("Error en defer de warn: %v", err), "CMD-Warn")
			return
		}

		// Append the warn to the user's document
		dm := database.GlobalWarnDM
		query := bson.M{"guildId": ctx.Interaction.GuildID, "userId": targetUser.ID}

		doc, err := dm.Get(query)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB Warn: %v", err), "CMD-Warn")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}
		if doc == nil {
			doc = &models.WarnsDocument{
				GuildID: ctx.Interaction.GuildID,
				UserID:  targetUser.ID,
			}
		}

		newWarn := models.Warn{
			ID:        uuid.New().String(),
			Reason:    reason,
			Moderator: ctx.User().ID,
			Timestamp: time.Now().Unix(),
		}
		doc.Warns = append(doc.Warns, newWarn)

		if _, err := dm.Set(query, doc); err != nil {
			logger.Error(fmt.Sprintf("Error guardando warn: %v", err), "CMD-Warn")
			ctx.EditReply("❌ No se pudo guardar la advertencia.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title: "⚠️ Usuario advertido",
			Description: fmt.Sprintf(
				"**Usuario:** %s\n**Razón:** %s\n**Moderador:** %s\n**Advertencias:** %d/%d",
				targetUser.Mention(), reason, ctx.User().Username, len(doc.Warns), maxWarns,
			),
			Color: 0xFFA500,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("ID: %s", newWarn.ID),
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		ctx.EditReplyEmbed(embed)

		// DM al usuario advertido
		embedDM := &discordgo.MessageEmbed{
			Title: "⚠ - Has recibido una advertencia",
			Color: 0xFFA500,
			Description: fmt.Sprintf(
				"⚒ - **Servidor:** %s (%s)\n"+
					"📋 - **Razón:** %s\n"+
					"🔢 - **Advertencias:** %d/%d\n\n"+
					"🕒 - **Fecha:** <t:%d:F>",
				ctx.Guild().Name, ctx.Interaction.GuildID, reason, len(doc.Warns), maxWarns, time.Now().Unix(),
			),
			Footer: &discordgo.MessageEmbedFooter{
				Text:    "💫 - PartyBot",
				IconURL: ctx.Client.Session.State.User.AvatarURL(""),
			},
		}

		userChannel, err := ctx.Session.UserChannelCreate(targetUser.ID)
		if err == nil {
			_, _ = ctx.Session.ChannelMessageSendEmbed(userChannel.ID, embedDM)
		}

		// Rebuild the pinned board
		UpdateBoard(ctx.Session, ctx.Interaction.GuildID)
	}()

	return nil
}
