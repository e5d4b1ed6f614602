package partycmd

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// Component custom ids used by the start flow. The modal id carries the
// chosen template id as a suffix.
const (
	SelectCompoID       = "select_compo"
	StartModalPrefix    = "start_comp_modal_"
	DeleteCompoSelectID = "delete_compo_select"
)

// createStartCommand creates the /party start subcommand
func createStartCommand() *discord.Command {
	return discord.NewCommand(
		"start",
		"Inicia una party desde un template guardado",
		"party",
		startHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages).RequiresDatabase()
}

// startHandler shows the template picker; the rest of the flow continues in
// the interaction handlers (select menu, then modal).
func startHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		templates, err := database.ListTemplates()
		if err != nil {
			logger.Error(fmt.Sprintf("Error listando templates: %v", err), "CMD-PartyStart")
			ctx.ReplyEphemeral("❌ Error al consultar los templates.")
			return
		}
		if len(templates) == 0 {
			ctx.ReplyEphemeral("❌ No hay templates guardados. Crea uno con `/party template add`.")
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
				Content: "📋 Elige el template de la party:",
				Flags:   discordgo.MessageFlagsEphemeral,
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.SelectMenu{
								CustomID:    SelectCompoID,
								Placeholder: "Template de party",
								Options:     options,
							},
						},
					},
				},
			},
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error enviando selector de templates: %v", err), "CMD-PartyStart")
		}
	}()

	return nil
}
