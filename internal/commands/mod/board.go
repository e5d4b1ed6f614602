package mod

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JustRunGuild/PartyBotGo/pkg/config"
	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson"
)

// maxWarns is the strike count shown on the board ("2/3").
const maxWarns = 3

// boardHeader is the fixed first line of the warn board message.
const boardHeader = "***__WARN LIST__***"

// BuildBoard renders the pinned warn-board message from the guild's warn
// documents. Users without warns are omitted; output order is stable.
func BuildBoard(docs []*models.WarnsDocument) string {
	var b strings.Builder
	b.WriteString(boardHeader)
	b.WriteString("\n")

	sorted := make([]*models.WarnsDocument, 0, len(docs))
	for _, doc := range docs {
		if doc != nil && len(doc.Warns) > 0 {
			sorted = append(sorted, doc)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UserID < sorted[j].UserID
	})

	if len(sorted) == 0 {
		b.WriteString("\nNadie tiene advertencias. 🎉")
		return b.String()
	}

	for _, doc := range sorted {
		b.WriteString(fmt.Sprintf("\n<@%s> %d/%d\n", doc.UserID, len(doc.Warns), maxWarns))
		for i, warn := range doc.Warns {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, warn.Reason))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// UpdateBoard rebuilds the pinned warn-board message for a guild. It is a
// no-op when the board channel or message is not configured.
func UpdateBoard(s *discordgo.Session, guildID string) {
	cfg := config.Get()
	if cfg.WarnsChannelID == "" || cfg.WarnsMessageID == "" {
		return
	}

	docs, err := database.GlobalWarnDM.GetAll(bson.M{"guildId": guildID})
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo leer la lista de warns: %v", err), "WarnBoard")
		return
	}

	content := BuildBoard(docs)
	if _, err := s.ChannelMessageEdit(cfg.WarnsChannelID, cfg.WarnsMessageID, content); err != nil {
		logger.Error(fmt.Sprintf("No se pudo actualizar el tablón de warns: %v", err), "WarnBoard")
	}
}
