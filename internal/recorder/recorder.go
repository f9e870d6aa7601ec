package recorder

import (
	"time"

	"ScenarioLens/internal/model"
)

// SimulationRecord holds the headline figures of one completed simulation.
type SimulationRecord struct {
	SimulationID  string
	BusinessID    string
	ScenarioID    string
	DecisionType  model.DecisionType
	Quality       string
	ForecastModel string
	NetChange     string
	LowestPoint   string
	BreakEvenDate *time.Time
	SignalCount   int
	TopSeverity   model.Severity
	ElapsedMs     int64
}

// Recorder persists simulation history for later analysis.
type Recorder interface {
	RecordSimulation(rec *SimulationRecord) error
	RecordSignals(simulationID string, signals []model.RiskSignal) error
	Close() error
}

// NoopRecorder is a no-op implementation used when SQLite is not
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSimulation(_ *SimulationRecord) error { return nil }

func (n *NoopRecorder) RecordSignals(_ string, _ []model.RiskSignal) error { return nil }

func (n *NoopRecorder) Close() error { return nil }
