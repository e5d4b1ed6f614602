package partycmd

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createTemplateDeleteCommand creates the /party template delete subcommand
func createTemplateDeleteCommand() *discord.Command {
	return discord.NewCommand(
		"delete",
		"Elimina un template de party guardado",
		"party",
		templateDeleteHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages).RequiresDatabase()
}

// templateDeleteHandler shows a select menu with the saved templates; the
// deletion happens in the interaction handler.
func templateDeleteHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		templates, err := database.ListTemplates()
		if err != nil {
			logger.Error(fmt.Sprintf("Error listando templates: %v", err), "CMD-TemplateDelete")
			ctx.ReplyEphemeral("❌ Error al consultar los templates.")
			return
		}
		if len(templates) == 0 {
			ctx.ReplyEphemeral("❌ No hay templates guardados.")
			return
		}

		options := make([]discordgo.SelectMenuOption, 0, 25)
		for i, tpl := range templates {
			if i >= 25 {
				break
			}
			options = append(options, discordgo.SelectMenuOption{
				Label: tpl.Name,
				Value: tpl.ID,
			})
		}

		err = ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "🗑️ Elige el template a eliminar:",
				Flags:   discordgo.MessageFlagsEphemeral,
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.SelectMenu{
								CustomID:    DeleteCompoSelectID,
								Placeholder: "Template a eliminar",
								Options:     options,
							},
						},
					},
				},
			},
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error enviando selector de borrado: %v", err), "CMD-TemplateDelete")
		}
	}()

	return nil
}
