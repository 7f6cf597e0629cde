package calibration

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// Repository implements contracts.FactorRepository on PostgreSQL.
// Factor samples and weight snapshots are append-only; snapshots are
// versioned by insertion order and never rewritten.
// ⭐ SSOT: 팩터/가중치 영속화는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new factor repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveSample appends one factor sample to history.
func (r *Repository) SaveSample(ctx context.Context, sample *contracts.FactorSample) error {
	factors, err := json.Marshal(sample.Factors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hqs.factor_samples (observed_at, regime, period_return, factors)
		VALUES ($1, $2, $3, $4)
	`

	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = r.pool.Exec(ctx, query, ts, string(sample.Regime), sample.Return, factors)
	return err
}

// SaveWeights appends one weight snapshot for a regime.
func (r *Repository) SaveWeights(ctx context.Context, regime contracts.Regime, weights contracts.WeightVector, perf contracts.PerformanceStats) error {
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return err
	}
	perfJSON, err := json.Marshal(perf)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hqs.weight_snapshots (regime, weights, performance, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = r.pool.Exec(ctx, query, string(regime), weightsJSON, perfJSON, time.Now().UTC())
	return err
}

// LoadLastWeights returns the most recent weight snapshot for a regime, or
// nil when none exists.
func (r *Repository) LoadLastWeights(ctx context.Context, regime contracts.Regime) (contracts.WeightVector, error) {
	query := `
		SELECT weights
		FROM hqs.weight_snapshots
		WHERE regime = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var weightsJSON []byte
	err := r.pool.QueryRow(ctx, query, string(regime)).Scan(&weightsJSON)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var weights contracts.WeightVector
	if err := json.Unmarshal(weightsJSON, &weights); err != nil {
		return nil, err
	}
	return weights, nil
}

// LoadHistory returns the most recent factor samples, oldest-first, capped
// at limit.
func (r *Repository) LoadHistory(ctx context.Context, limit int) ([]*contracts.FactorSample, error) {
	query := `
		SELECT observed_at, regime, period_return, factors
		FROM (
			SELECT observed_at, regime, period_return, factors
			FROM hqs.factor_samples
			ORDER BY observed_at DESC
			LIMIT $1
		) recent
		ORDER BY observed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSamples(rows)
}

// LoadHistorySince returns every factor sample observed at or after the
// given instant, oldest-first.
func (r *Repository) LoadHistorySince(ctx context.Context, since time.Time) ([]*contracts.FactorSample, error) {
	query := `
		SELECT observed_at, regime, period_return, factors
		FROM hqs.factor_samples
		WHERE observed_at >= $1
		ORDER BY observed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSamples(rows)
}

func scanSamples(rows pgx.Rows) ([]*contracts.FactorSample, error) {
	var samples []*contracts.FactorSample
	for rows.Next() {
		var (
			s           contracts.FactorSample
			regime      string
			factorsJSON []byte
		)
		if err := rows.Scan(&s.Timestamp, &regime, &s.Return, &factorsJSON); err != nil {
			return nil, err
		}
		s.Regime = contracts.Regime(regime)
		if err := json.Unmarshal(factorsJSON, &s.Factors); err != nil {
			return nil, err
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}
