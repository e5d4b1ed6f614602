// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/discord"
	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/JustRunGuild/PartyBotGo/pkg/roster"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	// Keep-alive endpoint polled by the uptime monitor
	s.Engine().GET("/", keepAliveHandler)

	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/parties", partiesHandler)
	}
}

// keepAliveHandler answers the uptime monitor
func keepAliveHandler(c *gin.Context) {
	c.String(http.StatusOK, "El bot está activo y funcionando.")
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PartyBot Go is running",
	})
}

// partiesHandler returns the currently open sign-up parties
func partiesHandler(c *gin.Context) {
	if database.GlobalPartyDM == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Base de datos no disponible",
		})
		return
	}

	parties, err := database.GlobalPartyDM.GetAll(bson.M{"locked": false})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "No se pudieron consultar las parties",
		})
		return
	}

	list := make([]gin.H, 0, len(parties))
	for _, p := range parties {
		list = append(list, partySummary(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(list),
		"parties": list,
	})
}

// partySummary renders one open party for the API: occupancy totals plus the
// per-"**Party N**" breakdown when the roster declares sections.
func partySummary(p *models.LiveParty) gin.H {
	parsed := roster.Parse(p.CurrentBody)

	filled := 0
	for _, s := range parsed.Slots() {
		if s.Occupied() {
			filled++
		}
	}

	out := gin.H{
		"guildId":  p.GuildID,
		"threadId": p.ThreadID,
		"closesAt": p.ClosesAt,
		"slots":    parsed.SlotCount(),
		"filled":   filled,
	}

	secs := parsed.Sections()
	if len(secs) == 0 {
		return out
	}

	views := make([]gin.H, 0, len(secs))
	for _, sec := range secs {
		secFilled := 0
		for _, s := range sec.Slots {
			if s.Occupied() {
				secFilled++
			}
		}
		views = append(views, gin.H{
			"title":  sec.Title,
			"filled": secFilled,
			"total":  len(sec.Slots),
		})
	}
	out["sections"] = views
	return out
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}
