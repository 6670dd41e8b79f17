// Package history keeps an ephemeral log of executed simulation runs.
package history

import (
	"context"
	"time"

	"github.com/tifye/climateclock/assert"
	"github.com/tifye/climateclock/climate"
	"github.com/tifye/climateclock/storage"
)

// Run is one executed simulation: the parameters it ran with and the
// end-of-horizon metrics it produced.
type Run struct {
	SessionID         string    `db:"session_id" json:"sessionId"`
	HorizonYears      int       `db:"horizon_years" json:"horizonYears"`
	CO2PPM            int       `db:"co2_ppm" json:"co2Ppm"`
	RainfallChangePct int       `db:"rainfall_change_pct" json:"rainfallChangePct"`
	GreenInfraPct     int       `db:"green_infra_pct" json:"greenInfraPct"`
	UrbanizationPct   int       `db:"urbanization_pct" json:"urbanizationPct"`
	TempAnomalyC      float64   `db:"temp_anomaly_c" json:"tempAnomalyC"`
	FloodRisk         float64   `db:"flood_risk" json:"floodRisk"`
	DroughtRisk       float64   `db:"drought_risk" json:"droughtRisk"`
	RanAt             time.Time `db:"ran_at" json:"ranAt"`
}

// NewRun builds a Run from a finished simulation.
func NewRun(sessionID string, params climate.Parameters, result climate.Result) Run {
	final := result.Final()
	return Run{
		SessionID:         sessionID,
		HorizonYears:      params.HorizonYears,
		CO2PPM:            params.CO2PPM,
		RainfallChangePct: params.RainfallChangePct,
		GreenInfraPct:     params.GreenInfraPct,
		UrbanizationPct:   params.UrbanizationPct,
		TempAnomalyC:      final.TempAnomalyC,
		FloodRisk:         final.FloodRisk,
		DroughtRisk:       final.DroughtRisk,
		RanAt:             time.Now().UTC(),
	}
}

type Store struct {
	db storage.DuckDB
}

func NewStore(db storage.DuckDB) *Store {
	assert.AssertNotNil(db)
	return &Store{
		db: db,
	}
}

func (s *Store) Insert(ctx context.Context, run Run) error {
	query := `
	insert into runs (
		session_id,
		horizon_years,
		co2_ppm,
		rainfall_change_pct,
		green_infra_pct,
		urbanization_pct,
		temp_anomaly_c,
		flood_risk,
		drought_risk,
		ran_at
	)
	values (?,?,?,?,?,?,?,?,?,?)
	`
	_, err := s.db.ExecContext(
		ctx, query,
		run.SessionID,
		run.HorizonYears,
		run.CO2PPM,
		run.RainfallChangePct,
		run.GreenInfraPct,
		run.UrbanizationPct,
		run.TempAnomalyC,
		run.FloodRisk,
		run.DroughtRisk,
		run.RanAt,
	)
	return err
}

// Recent returns the newest runs first.
func (s *Store) Recent(ctx context.Context, limit uint) ([]Run, error) {
	assert.Assert(limit > 0 && limit <= 500, "limit out of range")

	query := `
	select session_id,
		horizon_years,
		co2_ppm,
		rainfall_change_pct,
		green_infra_pct,
		urbanization_pct,
		temp_anomaly_c,
		flood_risk,
		drought_risk,
		ran_at
	from runs
	order by ran_at desc, id desc
	limit ?
	`
	var runs []Run
	err := s.db.SelectContext(ctx, &runs, query, limit)
	return runs, err
}

// CountBySession returns how many runs a session has executed.
func (s *Store) CountBySession(ctx context.Context, sessionID string) (uint, error) {
	query := `
	select count(*) from runs
	where session_id = ?
	`
	var count uint
	err := s.db.GetContext(ctx, &count, query, sessionID)
	return count, err
}
