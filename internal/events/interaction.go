// Package events provides event handlers for interaction events:
// the party component flow (select menus, modals) and the leave button.
package events

import (
	"fmt"
	"strings"

	partycmd "github.com/JustRunGuild/PartyBotGo/internal/commands/party"
	"github.com/JustRunGuild/PartyBotGo/internal/party"
	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/bwmarrin/discordgo"
)

// RegisterInteractionEvents registers all interaction-related event handlers
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onInteractionCreate)
}

// onInteractionCreate routes message components and modal submits.
// Slash commands are already handled by the CommandHandler.
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		go func() {
			defer errors.RecoverMiddleware()()

			switch customID {
			case partycmd.SelectCompoID:
				handleTemplateSelected(s, i)
			case partycmd.DeleteCompoSelectID:
				handleTemplateDelete(s, i)
			case party.DesapuntarmeButtonID:
				handleLeaveButton(s, i)
			default:
				logger.Debug(fmt.Sprintf("Componente no manejado: %s", customID), "Interaction")
			}
		}()

	case discordgo.InteractionModalSubmit:
		modalID := i.ModalSubmitData().CustomID

		go func() {
			defer errors.RecoverMiddleware()()

			switch {
			case modalID == partycmd.AddCompoModalID:
				handleTemplateAddModal(s, i)
			case strings.HasPrefix(modalID, partycmd.StartModalPrefix):
				handleStartModal(s, i, strings.TrimPrefix(modalID, partycmd.StartModalPrefix))
			default:
				logger.Debug(fmt.Sprintf("Modal no manejado: %s", modalID), "Interaction")
			}
		}()
	}
}

// handleTemplateSelected opens the start modal for the chosen template
func handleTemplateSelected(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	templateID := data.Values[0]

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: partycmd.StartModalPrefix + templateID,
			Title:    "Iniciar party",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "titulo",
							Label:       "Encabezado de la party",
							Style:       discordgo.TextInputShort,
							Required:    true,
							MaxLength:   100,
							Placeholder: "Avalonianas 21:00 UTC",
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "duracion",
							Label:       "Duración de las inscripciones",
							Style:       discordgo.TextInputShort,
							Required:    true,
							MaxLength:   20,
							Placeholder: "2h 30m",
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo modal de inicio: %v", err), "Interaction")
	}
}

// handleStartModal creates the party from the modal answers
func handleStartModal(s *discordgo.Session, i *discordgo.InteractionCreate, templateID string) {
	title := modalValue(i, "titulo")
	durationText := modalValue(i, "duracion")

	openFor, err := party.ParseDuration(durationText)
	if err != nil {
		respondEphemeral(s, i, "❌ "+err.Error())
		return
	}

	tpl, err := database.GetTemplate(templateID)
	if err != nil {
		respondEphemeral(s, i, "❌ No se pudo cargar el template: "+err.Error())
		return
	}

	mgr := party.Get()
	p, err := mgr.StartParty(i.GuildID, i.ChannelID, title, tpl.Body, openFor)
	if err != nil {
		respondEphemeral(s, i, "❌ No se pudo iniciar la party: "+err.Error())
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Party **%s** iniciada. Inscripciones abiertas durante **%s** en <#%s>.",
		title, party.FormatDuration(openFor), p.ThreadID,
	))
}

// handleTemplateDelete removes the selected template
func handleTemplateDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	templateID := data.Values[0]

	tpl, err := database.GetTemplate(templateID)
	if err != nil {
		respondEphemeral(s, i, "❌ "+err.Error())
		return
	}

	if err := database.DeleteTemplate(templateID); err != nil {
		logger.Error(fmt.Sprintf("Error eliminando template %s: %v", templateID, err), "Interaction")
		respondEphemeral(s, i, "❌ No se pudo eliminar el template.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("🗑️ Template **%s** eliminado.", tpl.Name))
}

// handleTemplateAddModal validates and stores a new template
func handleTemplateAddModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := modalValue(i, "nombre")
	body := modalValue(i, "cuerpo")

	if roster.Parse(body).SlotCount() == 0 {
		respondEphemeral(s, i, "❌ El cuerpo no contiene puestos numerados (`1. Tank: X`).")
		return
	}

	tpl, err := database.SaveTemplate(name, body, i.Member.User.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error guardando template: %v", err), "Interaction")
		respondEphemeral(s, i, "❌ No se pudo guardar el template.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Template **%s** guardado con **%d** puestos.",
		tpl.Name, roster.Parse(tpl.Body).SlotCount(),
	))
}

// handleLeaveButton vacates the member's slot in the thread's party
func handleLeaveButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	mgr := party.Get()

	out, err := mgr.Release(i.ChannelID, i.Member.User.ID)
	if err != nil {
		respondEphemeral(s, i, "❌ "+err.Error())
		return
	}

	switch out.Code {
	case roster.OK:
		respondEphemeral(s, i, fmt.Sprintf("👋 Has sido desapuntado del puesto **%d**.", out.Slot))
	case roster.NotSignedUp:
		respondEphemeral(s, i, "❌ No estás apuntado en esta party.")
	default:
		respondEphemeral(s, i, "❌ No se te pudo desapuntar.")
	}
}

// modalValue extracts a text input value from a modal submit by custom id
func modalValue(i *discordgo.InteractionCreate, customID string) string {
	for _, component := range i.ModalSubmitData().Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionRow.Components {
			if input, ok := c.(*discordgo.TextInput); ok && input.CustomID == customID {
				return strings.TrimSpace(input.Value)
			}
		}
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error respondiendo interacción: %v", err), "Interaction")
	}
}
