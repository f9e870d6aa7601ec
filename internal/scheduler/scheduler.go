package scheduler

import (
	"context"
	"fmt"
	"log"

	"ScenarioLens/internal/engine"
	"ScenarioLens/internal/model"
	"ScenarioLens/internal/notifier"
	"ScenarioLens/internal/recorder"
	"ScenarioLens/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler re-simulates watched scenarios on a cron schedule and pushes
// alerts for high and critical signals.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Store    store.Store
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, st store.Store, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Store:    st,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily risk scan and the weekly digest.
func (s *Scheduler) RegisterAll(dailyCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly digest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the daily scan immediately (manual trigger or
// RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.dailyScan()
}

// dailyScan re-simulates every watched scenario against a fresh context
// snapshot and alerts on high or critical signals.
func (s *Scheduler) dailyScan() {
	log.Println("[INFO] running daily risk scan")
	watched, err := s.Store.ListWatched()
	if err != nil {
		log.Printf("[ERROR] list watched scenarios: %v", err)
		return
	}

	for _, w := range watched {
		res, bizName, err := s.simulateWatched(&w)
		if err != nil {
			log.Printf("[ERROR] re-simulate scenario %s: %v", w.ID, err)
			continue
		}

		if alertWorthy(res.Signals) {
			label := w.Label
			if label == "" {
				label = string(w.Params.Type)
			}
			s.trySend(notifier.FormatSimulationReport(bizName, label, res))
		}
	}
}

func (s *Scheduler) simulateWatched(w *store.WatchedScenario) (*engine.Result, string, error) {
	biz, err := s.Store.LoadBusiness(w.BusinessID)
	if err != nil {
		return nil, "", err
	}

	res, err := s.Engine.Simulate(s.Ctx, biz, &w.Params)
	if err != nil {
		return nil, "", err
	}

	rec := &recorder.SimulationRecord{
		SimulationID:  res.SimulationID,
		BusinessID:    res.BusinessID,
		ScenarioID:    w.ID,
		DecisionType:  w.Params.Type,
		Quality:       string(res.Quality),
		ForecastModel: res.ForecastModel,
		NetChange:     res.Projection.Summary.NetChange.StringFixed(2),
		LowestPoint:   res.Projection.Summary.LowestPoint.StringFixed(2),
		BreakEvenDate: res.Projection.Summary.BreakEvenDate,
		SignalCount:   len(res.Signals),
		ElapsedMs:     res.Elapsed.Milliseconds(),
	}
	if len(res.Signals) > 0 {
		rec.TopSeverity = res.Signals[0].Severity
	}
	if err := s.Recorder.RecordSimulation(rec); err != nil {
		log.Printf("[ERROR] record simulation %s: %v", res.SimulationID, err)
	}
	if err := s.Recorder.RecordSignals(res.SimulationID, res.Signals); err != nil {
		log.Printf("[ERROR] record signals for %s: %v", res.SimulationID, err)
	}

	return res, biz.Name, nil
}

// weeklyDigest compares all watched scenarios per business and sends the
// ranking.
func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	watched, err := s.Store.ListWatched()
	if err != nil {
		log.Printf("[ERROR] list watched scenarios: %v", err)
		return
	}

	byBusiness := make(map[string][]store.WatchedScenario)
	for _, w := range watched {
		byBusiness[w.BusinessID] = append(byBusiness[w.BusinessID], w)
	}

	for bizID, group := range byBusiness {
		if len(group) < 2 {
			continue
		}
		var outcomes []model.ScenarioOutcome
		for _, w := range group {
			res, _, err := s.simulateWatched(&w)
			if err != nil {
				log.Printf("[ERROR] re-simulate scenario %s: %v", w.ID, err)
				continue
			}
			id := w.Label
			if id == "" {
				id = w.ID
			}
			outcomes = append(outcomes, model.ScenarioOutcome{
				ID:         id,
				Projection: res.Projection,
				Signals:    res.Signals,
			})
		}
		if len(outcomes) < 2 {
			continue
		}
		cmp, err := s.Engine.Compare(outcomes)
		if err != nil {
			log.Printf("[ERROR] compare scenarios for business %s: %v", bizID, err)
			continue
		}
		s.trySend(notifier.FormatComparison(cmp))
	}
}

// alertWorthy reports whether the ordered signal list warrants a push
// notification. Signals arrive severity-descending, so only the head needs
// checking.
func alertWorthy(signals []model.RiskSignal) bool {
	return len(signals) > 0 && signals[0].Severity.Rank() >= model.SeverityHigh.Rank()
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
