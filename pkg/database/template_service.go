package database

import (
	"errors"
	"time"

	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Alias de tipos para facilitar el acceso
type Template = models.Template

var (
	ErrTemplateManagerNotInitialized = errors.New("template data manager not initialized")
	ErrTemplateNotFound              = errors.New("template de party no encontrado")
	ErrTemplateEmpty                 = errors.New("el template no contiene puestos numerados")
)

func getTemplateManager() (*DataManager[models.Template], error) {
	if GlobalTemplateDM == nil {
		return nil, ErrTemplateManagerNotInitialized
	}
	return GlobalTemplateDM, nil
}

// SaveTemplate stores a new roster template and returns it with its id.
// Validation of the body (at least one parsable slot) is the caller's job;
// this layer only persists.
func SaveTemplate(name, body, createdBy string) (*models.Template, error) {
	dm, err := getTemplateManager()
	if err != nil {
		return nil, err
	}

	tpl := models.Template{
		ID:        uuid.New().String(),
		Name:      name,
		Body:      body,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}

	return dm.Set(bson.M{"_id": tpl.ID}, tpl)
}

// GetTemplate fetches a template by id.
func GetTemplate(id string) (*models.Template, error) {
	dm, err := getTemplateManager()
	if err != nil {
		return nil, err
	}

	tpl, err := dm.Get(bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

// ListTemplates returns all saved templates.
func ListTemplates() ([]*models.Template, error) {
	dm, err := getTemplateManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// DeleteTemplate removes a template by id.
func DeleteTemplate(id string) error {
	dm, err := getTemplateManager()
	if err != nil {
		return err
	}
	return dm.Delete(bson.M{"_id": id})
}
