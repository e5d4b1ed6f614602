package models

import "time"

// Template representa una compo guardada: un cuerpo de roster reutilizable
// para iniciar nuevas parties.
type Template struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Body      string    `bson:"body" json:"body"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
