package party

import (
	"fmt"
	"sync"
	"time"

	"github.com/JustRunGuild/PartyBotGo/pkg/database"
	"github.com/JustRunGuild/PartyBotGo/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// sweepInterval is how often pending closures and purges are polled. Keeping
// the deadlines in the documents instead of in-process timers means a restart
// never loses a pending closure.
const sweepInterval = 30 * time.Second

// Scheduler closes parties whose sign-up window expired and purges locked
// documents past their retention.
type Scheduler struct {
	manager  *Manager
	stopCh   chan struct{}
	stopOnce sync.Once
}

// StartScheduler launches the background sweep loop.
func StartScheduler(m *Manager) *Scheduler {
	sc := &Scheduler{
		manager: m,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		// First sweep right away to catch deadlines missed while offline.
		sc.sweep()

		for {
			select {
			case <-ticker.C:
				sc.sweep()
			case <-sc.stopCh:
				return
			}
		}
	}()

	logger.System("Planificador de parties iniciado", "Scheduler")
	return sc
}

// Stop terminates the sweep loop.
func (sc *Scheduler) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
}

func (sc *Scheduler) sweep() {
	now := time.Now()

	due, err := database.GlobalPartyDM.GetAll(bson.M{
		"locked":   false,
		"closesAt": bson.M{"$lte": now},
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron consultar las parties pendientes: %v", err), "Scheduler")
		return
	}
	for _, p := range due {
		if err := sc.manager.Close(p); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando la party del hilo %s: %v", p.ThreadID, err), "Scheduler")
		}
	}

	expired, err := database.GlobalPartyDM.GetAll(bson.M{
		"locked":  true,
		"purgeAt": bson.M{"$lte": now},
	})
	if err != nil {
		return
	}
	for _, p := range expired {
		if err := sc.manager.Purge(p); err != nil {
			logger.Error(fmt.Sprintf("Error purgando la party del hilo %s: %v", p.ThreadID, err), "Scheduler")
			continue
		}
		logger.Debug("Party purgada: "+p.ThreadID, "Scheduler")
	}
}
