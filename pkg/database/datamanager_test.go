package database

import (
	"testing"

	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// newOfflineDM builds a DataManager with no live connection and a clean
// cache, so tests exercise the cache layer only.
func newOfflineDM(t *testing.T) *DataManager[models.LiveParty] {
	t.Helper()
	dm := NewDataManager[models.LiveParty]("live_parties", NewDatabase())
	dm.ClearCache()
	return dm
}

func TestStoreRefreshesReadKeyAfterVersionedCommit(t *testing.T) {
	dm := newOfflineDM(t)
	readQ := bson.M{"threadId": "t1"}
	casQ := bson.M{"threadId": "t1", "version": int64(1)}

	if dm.generateCacheKey(readQ) == dm.generateCacheKey(casQ) {
		t.Fatal("read key and versioned commit key must differ")
	}

	dm.Store(readQ, &models.LiveParty{ThreadID: "t1", CurrentBody: "1. Tank: X", Version: 1})
	dm.Store(readQ, &models.LiveParty{ThreadID: "t1", CurrentBody: "1. Tank: <@alice>", Version: 2})

	got, err := dm.Get(readQ)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Version != 2 || got.CurrentBody != "1. Tank: <@alice>" {
		t.Errorf("Get() = v%d %q, want the committed document v2", got.Version, got.CurrentBody)
	}
}

func TestInvalidateDropsCachedDocument(t *testing.T) {
	dm := newOfflineDM(t)
	q := bson.M{"threadId": "t2"}

	dm.Store(q, &models.LiveParty{ThreadID: "t2", Version: 1})
	dm.Invalidate(q)

	// With the connection down and the entry dropped there is nothing to
	// serve; a stale hit here would resurrect the pre-commit document.
	if _, err := dm.Get(q); err == nil {
		t.Error("Get() after Invalidate served a dropped document while offline")
	}
}
