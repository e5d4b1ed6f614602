package partycmd

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// AddCompoModalID is the custom id of the template creation modal.
const AddCompoModalID = "add_compo_modal"

// createTemplateAddCommand creates the /party template add subcommand
func createTemplateAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Guarda un nuevo template de party",
		"party",
		templateAddHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages).RequiresDatabase()
}

// templateAddHandler opens the creation modal; the submit is handled in the
// interaction handler.
func templateAddHandler(ctx *discord.CommandContext) error {
	err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: AddCompoModalID,
			Title:    "Nuevo template de party",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "nombre",
							Label:       "Nombre del template",
							Style:       discordgo.TextInputShort,
							Required:    true,
							MaxLength:   100,
							Placeholder: "Avalonianas martes",
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "cuerpo",
							Label:       "Cuerpo del roster",
							Style:       discordgo.TextInputParagraph,
							Required:    true,
							Placeholder: "**Party 1**\n1. Tank: X\n2. Healer: X",
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo modal de template: %v", err), "CMD-TemplateAdd")
	}
	return err
}
