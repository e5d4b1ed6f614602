// Package party orchestrates live sign-up parties: it owns the roster
// documents in MongoDB, serializes slot mutations and mirrors every committed
// change back to the Discord message.
package party

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/JustRunGuild/PartyBotGo/pkg/config"
	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/JustRunGuild/PartyBotGo/pkg/mqtt"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrPartyNotFound = errors.New("no hay ninguna party activa en este hilo")
	ErrPartyLocked   = errors.New("las inscripciones de esta party ya están cerradas")
	ErrConflict      = errors.New("la party se modificó demasiadas veces a la vez, inténtalo de nuevo")
)

// DesapuntarmeButtonID is the custom id of the leave button posted in every
// sign-up thread.
const DesapuntarmeButtonID = "desapuntarme_button"

// casRetries bounds the compare-and-swap loop. With the per-thread mutex a
// retry only happens when another process committed in between.
const casRetries = 3

// Manager serializes roster mutations per sign-up thread and keeps the
// Discord message, the database document and the MQTT stream in sync.
type Manager struct {
	session *discordgo.Session
	engine  *roster.Engine

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var (
	manager *Manager
	once    sync.Once
)

// Init initializes the global party manager
func Init(session *discordgo.Session) *Manager {
	once.Do(func() {
		manager = &Manager{
			session: session,
			engine:  roster.NewEngine(config.Get().MaxSlot),
			locks:   make(map[string]*sync.Mutex),
		}
	})
	return manager
}

// Get returns the global party manager
func Get() *Manager {
	return manager
}

// Engine returns the slot engine used by the manager
func (m *Manager) Engine() *roster.Engine {
	return m.engine
}

// threadLock returns the mutex for a thread, creating it on first use
func (m *Manager) threadLock(threadID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.locks[threadID]; ok {
		return l
	}
	l := &sync.Mutex{}
	m.locks[threadID] = l
	return l
}

func (m *Manager) dropThreadLock(threadID string) {
	m.mu.Lock()
	delete(m.locks, threadID)
	m.mu.Unlock()
}

// StartParty posts the roster in the channel, opens its sign-up thread and
// persists the live party document.
func (m *Manager) StartParty(guildID, channelID, title, body string, openFor time.Duration) (*models.LiveParty, error) {
	parsed := roster.Parse(body)
	if parsed.SlotCount() == 0 {
		return nil, database.ErrTemplateEmpty
	}

	msg, err := m.session.ChannelMessageSend(channelID, body)
	if err != nil {
		return nil, fmt.Errorf("no se pudo publicar la party: %w", err)
	}

	thread, err := m.session.MessageThreadStartComplex(channelID, msg.ID, &discordgo.ThreadStart{
		Name:                title,
		AutoArchiveDuration: 1440,
	})
	if err != nil {
		return nil, fmt.Errorf("no se pudo crear el hilo de inscripción: %w", err)
	}

	now := time.Now()
	party := models.LiveParty{
		MessageID:    msg.ID,
		ChannelID:    channelID,
		ThreadID:     thread.ID,
		GuildID:      guildID,
		OriginalBody: body,
		CurrentBody:  body,
		Version:      1,
		Locked:       false,
		CreatedAt:    now,
		ClosesAt:     now.Add(openFor),
	}

	if _, err := database.GlobalPartyDM.Set(bson.M{"threadId": thread.ID}, party); err != nil {
		return nil, err
	}

	_, err = m.session.ChannelMessageSendComplex(thread.ID, &discordgo.MessageSend{
		Content: "Escribe el **número** del puesto que quieres ocupar, o `desapuntar` para salir.\nInscripciones abiertas durante **" + FormatDuration(openFor) + "**.",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Desapuntarme",
						Style:    discordgo.DangerButton,
						CustomID: DesapuntarmeButtonID,
					},
				},
			},
		},
	})
	if err != nil {
		logger.Warn("No se pudo enviar el mensaje de instrucciones al hilo: "+err.Error(), "PartyManager")
	}

	m.publish("partybot/events/created", map[string]interface{}{
		"guildId":  guildID,
		"threadId": thread.ID,
		"title":    title,
		"slots":    parsed.SlotCount(),
		"closesAt": party.ClosesAt.Format(time.RFC3339),
	})

	logger.Success(fmt.Sprintf("Party '%s' iniciada en el hilo %s (%d puestos)", title, thread.ID, parsed.SlotCount()), "PartyManager")
	return &party, nil
}

// Find returns the live party anchored to a thread, or ErrPartyNotFound.
func (m *Manager) Find(threadID string) (*models.LiveParty, error) {
	p, err := database.GlobalPartyDM.Get(bson.M{"threadId": threadID})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPartyNotFound
	}
	return p, nil
}

// mutate loads the party, applies fn to a working copy of its roster and
// commits the result with a version compare-and-swap. Outcomes other than OK
// are returned without touching anything.
func (m *Manager) mutate(threadID string, fn func(live, pristine *roster.Roster) roster.Outcome) (roster.Outcome, error) {
	lock := m.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < casRetries; attempt++ {
		p, err := m.Find(threadID)
		if err != nil {
			return roster.Outcome{}, err
		}
		if p.Locked {
			return roster.Outcome{}, ErrPartyLocked
		}

		live := roster.Parse(p.CurrentBody)
		pristine := roster.Parse(p.OriginalBody)

		out := fn(live, pristine)
		if out.Code != roster.OK {
			// The rejection may rest on a cached document another process
			// already superseded; drop it so a retry rereads.
			database.GlobalPartyDM.Invalidate(bson.M{"threadId": threadID})
			return out, nil
		}

		newBody := out.Roster.Body()
		updated, err := database.GlobalPartyDM.Update(
			bson.M{"threadId": threadID, "version": p.Version},
			bson.M{"currentBody": newBody, "version": p.Version + 1},
		)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// Lost the race against another writer: reload and retry.
				database.GlobalPartyDM.Invalidate(bson.M{"threadId": threadID})
				continue
			}
			return roster.Outcome{}, err
		}

		// The commit went through the versioned key; refresh the read key so
		// the next Find on this thread sees the committed roster.
		database.GlobalPartyDM.Store(bson.M{"threadId": threadID}, updated)

		if _, err := m.session.ChannelMessageEdit(p.ChannelID, p.MessageID, newBody); err != nil {
			logger.Error("No se pudo editar el mensaje de la party "+p.MessageID+": "+err.Error(), "PartyManager")
		}

		m.publish("partybot/events/slot", map[string]interface{}{
			"threadId": threadID,
			"slot":     out.Slot,
			"vacated":  out.Vacated,
		})

		return out, nil
	}

	return roster.Outcome{}, ErrConflict
}

// Claim tries to put a member into a slot. A NeedsRole outcome means the
// caller has to collect the role first and finish with ClaimWithRole.
func (m *Manager) Claim(threadID, userID string, n int) (roster.Outcome, error) {
	return m.mutate(threadID, func(live, pristine *roster.Roster) roster.Outcome {
		return m.engine.Claim(live, pristine, userID, n)
	})
}

// ClaimWithRole puts a member into a generic slot with the role they chose.
func (m *Manager) ClaimWithRole(threadID, userID string, n int, role string) (roster.Outcome, error) {
	return m.mutate(threadID, func(live, pristine *roster.Roster) roster.Outcome {
		return m.engine.ClaimWithRole(live, pristine, userID, n, role)
	})
}

// Release removes a member from whatever slot they hold.
func (m *Manager) Release(threadID, userID string) (roster.Outcome, error) {
	return m.mutate(threadID, func(live, pristine *roster.Roster) roster.Outcome {
		return m.engine.Release(live, pristine, userID)
	})
}

// AdminAssign force-places a member into a slot on behalf of a moderator.
// For generic slots the role must come with the command; the collector flow
// is not used here.
func (m *Manager) AdminAssign(threadID, userID string, n int, role string) (roster.Outcome, error) {
	return m.mutate(threadID, func(live, pristine *roster.Roster) roster.Outcome {
		if role != "" {
			return m.engine.ClaimWithRole(live, pristine, userID, n, role)
		}
		return m.engine.Claim(live, pristine, userID, n)
	})
}

// Close locks the party: sign-ups end, the thread is archived and the
// document is scheduled for purge.
func (m *Manager) Close(p *models.LiveParty) error {
	locked := true
	archived := true
	_, err := m.session.ChannelEditComplex(p.ThreadID, &discordgo.ChannelEdit{
		Locked:   &locked,
		Archived: &archived,
	})
	if err != nil {
		logger.Error("No se pudo bloquear el hilo "+p.ThreadID+": "+err.Error(), "PartyManager")
	}

	retention := time.Duration(config.Get().LockRetentionHours) * time.Hour
	_, err = database.GlobalPartyDM.Update(
		bson.M{"threadId": p.ThreadID},
		bson.M{"locked": true, "purgeAt": time.Now().Add(retention)},
	)
	if err != nil {
		return err
	}
	database.GlobalPartyDM.Invalidate(bson.M{"threadId": p.ThreadID})

	if _, err := m.session.ChannelMessageSend(p.ThreadID, "⏰ Las inscripciones de esta party han terminado."); err == nil {
		logger.Info("Party cerrada en el hilo "+p.ThreadID, "PartyManager")
	}

	m.publish("partybot/events/closed", map[string]interface{}{
		"threadId": p.ThreadID,
		"guildId":  p.GuildID,
	})
	return nil
}

// Purge deletes an expired party document.
func (m *Manager) Purge(p *models.LiveParty) error {
	m.dropThreadLock(p.ThreadID)
	return database.GlobalPartyDM.Delete(bson.M{"threadId": p.ThreadID})
}

// publish sends a telemetry event if the MQTT broker is available
func (m *Manager) publish(topic string, payload map[string]interface{}) {
	mc := mqtt.Get()
	if mc == nil || !mc.IsConnected() {
		return
	}
	if err := mc.Publish(topic, payload); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar en %s: %v", topic, err), "PartyManager")
	}
}
