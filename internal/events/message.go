// Package events provides event handlers for message events
package events

import (
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/JustRunGuild/PartyBotGo/internal/party"
	"github.com/JustRunGuild/PartyBotGo/pkg/config"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/bwmarrin/discordgo"
)

// feedbackTTL is how long bot feedback stays in the sign-up thread.
const feedbackTTL = 10 * time.Second

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageCreate)
}

// onMessageCreate drives the sign-up flow inside party threads: a number
// claims that slot, "desapuntar" vacates.
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	mgr := party.Get()
	if mgr == nil {
		return
	}

	p, err := mgr.Find(m.ChannelID)
	if err != nil {
		if goerrors.Is(err, party.ErrPartyNotFound) {
			// Not a sign-up thread.
			return
		}
		// Store unavailable: a sign-up action must not vanish silently, but
		// ordinary conversation gets no reply.
		logger.Warn(fmt.Sprintf("No se pudo consultar la party del hilo %s: %v", m.ChannelID, err), "Message")
		content := strings.TrimSpace(m.Content)
		if _, ok := mgr.Engine().ParseSlotNumber(content); ok || isLeaveCommand(content) {
			sendTemp(s, m.ChannelID, fmt.Sprintf("⚠️ <@%s>, no se pudo acceder a la base de datos. Inténtalo de nuevo más tarde.", m.Author.ID))
		}
		return
	}
	if p.Locked {
		return
	}

	go func() {
		defer errors.RecoverMiddleware()()
		handleThreadMessage(s, m, mgr)
	}()
}

func handleThreadMessage(s *discordgo.Session, m *discordgo.MessageCreate, mgr *party.Manager) {
	content := strings.TrimSpace(m.Content)

	if isLeaveCommand(content) {
		out, err := mgr.Release(m.ChannelID, m.Author.ID)
		if err != nil {
			sendTemp(s, m.ChannelID, "❌ "+err.Error())
			return
		}
		switch out.Code {
		case roster.OK:
			sendTemp(s, m.ChannelID, fmt.Sprintf("👋 <@%s> desapuntado del puesto **%d**.", m.Author.ID, out.Slot))
		case roster.NotSignedUp:
			sendTemp(s, m.ChannelID, fmt.Sprintf("❌ <@%s>, no estás apuntado en esta party.", m.Author.ID))
		}
		deleteLater(s, m.ChannelID, m.ID)
		return
	}

	n, ok := mgr.Engine().ParseSlotNumber(content)
	if !ok {
		// Normal conversation, leave it alone.
		return
	}

	out, err := mgr.Claim(m.ChannelID, m.Author.ID, n)
	if err != nil {
		sendTemp(s, m.ChannelID, "❌ "+err.Error())
		deleteLater(s, m.ChannelID, m.ID)
		return
	}

	switch out.Code {
	case roster.OK:
		sendTemp(s, m.ChannelID, fmt.Sprintf("✅ <@%s> apuntado en el puesto **%d**.", m.Author.ID, out.Slot))
	case roster.NeedsRole:
		promptForRole(s, m, mgr, n)
	case roster.SlotNotFound:
		sendTemp(s, m.ChannelID, fmt.Sprintf("❌ El puesto **%d** no existe en esta party.", n))
	case roster.SlotOccupied:
		sendTemp(s, m.ChannelID, fmt.Sprintf("❌ El puesto **%d** ya está ocupado.", n))
	}
	deleteLater(s, m.ChannelID, m.ID)
}

// promptForRole asks the member which role they bring to a free slot and
// waits for their answer. No answer within the window means nothing changes.
func promptForRole(s *discordgo.Session, m *discordgo.MessageCreate, mgr *party.Manager, n int) {
	window := time.Duration(config.Get().RolePromptSeconds) * time.Second

	prompt, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("<@%s> ¿Qué rol vas a llevar? Responde en este hilo.", m.Author.ID))
	if err != nil {
		logger.Error(fmt.Sprintf("Error enviando pregunta de rol: %v", err), "Message")
		return
	}

	answer, got := party.CollectNextMessage(s, m.ChannelID, m.Author.ID, window)

	if prompt != nil {
		_ = s.ChannelMessageDelete(m.ChannelID, prompt.ID)
	}

	if !got {
		sendTemp(s, m.ChannelID, fmt.Sprintf("⌛ <@%s>, tiempo agotado: no se te ha apuntado.", m.Author.ID))
		return
	}
	defer deleteLater(s, m.ChannelID, answer.ID)

	role := strings.TrimSpace(answer.Content)
	if role == "" {
		sendTemp(s, m.ChannelID, fmt.Sprintf("❌ <@%s>, rol vacío: no se te ha apuntado.", m.Author.ID))
		return
	}

	out, err := mgr.ClaimWithRole(m.ChannelID, m.Author.ID, n, role)
	if err != nil {
		sendTemp(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	switch out.Code {
	case roster.OK:
		sendTemp(s, m.ChannelID, fmt.Sprintf("✅ <@%s> apuntado en el puesto **%d** como **%s**.", m.Author.ID, out.Slot, role))
	case roster.SlotOccupied:
		sendTemp(s, m.ChannelID, fmt.Sprintf("❌ Alguien ocupó el puesto **%d** mientras respondías.", out.Slot))
	default:
		sendTemp(s, m.ChannelID, fmt.Sprintf("❌ <@%s>, no se te pudo apuntar.", m.Author.ID))
	}
}

// isLeaveCommand reports whether a thread message is exactly the leave
// keyword. A sentence that merely mentions the word is normal conversation.
func isLeaveCommand(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	return lower == "desapuntar" || lower == "desapuntarme"
}

// sendTemp posts feedback that deletes itself after feedbackTTL
func sendTemp(s *discordgo.Session, channelID, content string) {
	msg, err := s.ChannelMessageSend(channelID, content)
	if err != nil {
		logger.Debug(fmt.Sprintf("Error enviando feedback: %v", err), "Message")
		return
	}
	deleteLater(s, channelID, msg.ID)
}

// deleteLater removes a message after feedbackTTL
func deleteLater(s *discordgo.Session, channelID, messageID string) {
	go func() {
		time.Sleep(feedbackTTL)
		_ = s.ChannelMessageDelete(channelID, messageID)
	}()
}
