package store

import "ScenarioLens/internal/model"

// WatchedScenario is a saved scenario the scheduler re-simulates
// periodically.
type WatchedScenario struct {
	ID         string
	BusinessID string
	Label      string
	Params     model.ScenarioParams
}

// Store supplies read-only business context snapshots and the watched
// scenario list. The engine never writes through this interface.
type Store interface {
	LoadBusiness(id string) (*model.BusinessContext, error)
	ListWatched() ([]WatchedScenario, error)
	Close() error
}
