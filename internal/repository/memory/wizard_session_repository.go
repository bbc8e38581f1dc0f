package memory

import (
	"time"

	"building-book-be/internal/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type WizardSessionRepository struct {
	cache *cache.Cache
}

func NewWizardSessionRepository() *WizardSessionRepository {
	// Sessions idle for 2 hours are dropped; expired items are purged
	// every 10 minutes
	c := cache.New(2*time.Hour, 10*time.Minute)
	return &WizardSessionRepository{
		cache: c,
	}
}

func (r *WizardSessionRepository) Save(session *store.WizardSession) {
	r.cache.Set(session.BuildingId.String(), session, cache.DefaultExpiration)
}

func (r *WizardSessionRepository) Get(buildingId uuid.UUID) (*store.WizardSession, bool) {
	if x, found := r.cache.Get(buildingId.String()); found {
		return x.(*store.WizardSession), true
	}
	return nil, false
}

func (r *WizardSessionRepository) Delete(buildingId uuid.UUID) {
	r.cache.Delete(buildingId.String())
}
