package models

import "time"

// LiveParty representa el documento de la colección "live_parties": una
// inscripción activa anclada al mensaje principal de la party.
//
// OriginalBody is the pristine template text used to restore vacated slots;
// CurrentBody is the roster as last committed. Version increments on every
// committed mutation and backs the compare-and-swap update, so two members
// racing for the same slot cannot both win.
type LiveParty struct {
	MessageID    string    `bson:"messageId" json:"messageId"`
	ChannelID    string    `bson:"channelId" json:"channelId"`
	ThreadID     string    `bson:"threadId" json:"threadId"`
	GuildID      string    `bson:"guildId" json:"guildId"`
	OriginalBody string    `bson:"originalBody" json:"originalBody"`
	CurrentBody  string    `bson:"currentBody" json:"currentBody"`
	Version      int64     `bson:"version" json:"version"`
	Locked       bool      `bson:"locked" json:"locked"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	// ClosesAt is when sign-ups end and the thread is locked. PurgeAt is
	// when the document itself is deleted; both are polled by the
	// scheduler, so pending closures survive a process restart.
	ClosesAt time.Time `bson:"closesAt" json:"closesAt"`
	PurgeAt  time.Time `bson:"purgeAt,omitempty" json:"purgeAt,omitempty"`
}
