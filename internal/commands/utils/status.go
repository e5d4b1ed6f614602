package utils

import (
	"fmt"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		activeParties := 0
		if database.GlobalPartyDM != nil {
			if parties, err := database.GlobalPartyDM.GetAll(bson.M{"locked": false}); err == nil {
				activeParties = len(parties)
			}
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Servidores: %d\n"+
				"• Parties activas: %d",
			dbStatus,
			ctx.Client.GuildCount(),
			activeParties,
		))
	}()
	return nil
}
