package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parking-service/internal/domain"
)

// SpotRepository encapsulates occupancy state for parking spots. It is
// the single stateful collaborator of the allocation logic: snapshot
// reads, aggregate occupancy counts, lowest-id free-spot lookups and a
// compare-and-set update of the occupied flag.
type SpotRepository interface {
	List(ctx context.Context) ([]domain.Spot, error)
	GetByID(ctx context.Context, id int) (*domain.Spot, error)
	Occupancy(ctx context.Context, lot domain.Lot) (occupied, total int, err error)
	FindFree(ctx context.Context, lot domain.Lot, tier domain.Tier) (*domain.Spot, error)
	FindFreeAnyLot(ctx context.Context, tier domain.Tier) (*domain.Spot, error)
	SetOccupied(ctx context.Context, id int, occupied bool) error
}

type spotRepository struct {
	pool *pgxpool.Pool
}

// NewSpotRepository returns a Postgres-backed implementation.
func NewSpotRepository(pool *pgxpool.Pool) SpotRepository {
	return &spotRepository{pool: pool}
}

func (r *spotRepository) List(ctx context.Context) ([]domain.Spot, error) {
	const query = `
        SELECT spot_id, lot, tier, is_occupied
        FROM parking_spots ORDER BY spot_id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSpots(rows)
}

func (r *spotRepository) GetByID(ctx context.Context, id int) (*domain.Spot, error) {
	const query = `
        SELECT spot_id, lot, tier, is_occupied
        FROM parking_spots WHERE spot_id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *spotRepository) Occupancy(ctx context.Context, lot domain.Lot) (int, int, error) {
	const query = `
        SELECT COUNT(*) FILTER (WHERE is_occupied), COUNT(*)
        FROM parking_spots WHERE lot=$1`

	var occupied, total int
	if err := r.pool.QueryRow(ctx, query, lot).Scan(&occupied, &total); err != nil {
		return 0, 0, err
	}
	return occupied, total, nil
}

func (r *spotRepository) FindFree(ctx context.Context, lot domain.Lot, tier domain.Tier) (*domain.Spot, error) {
	const query = `
        SELECT spot_id, lot, tier, is_occupied
        FROM parking_spots
        WHERE lot=$1 AND tier=$2 AND NOT is_occupied
        ORDER BY spot_id ASC LIMIT 1`

	spot, err := r.fetchSingle(ctx, query, lot, tier)
	if err != nil {
		return nil, err
	}
	return spot, nil
}

func (r *spotRepository) FindFreeAnyLot(ctx context.Context, tier domain.Tier) (*domain.Spot, error) {
	const query = `
        SELECT spot_id, lot, tier, is_occupied
        FROM parking_spots
        WHERE tier=$1 AND NOT is_occupied
        ORDER BY spot_id ASC LIMIT 1`
	return r.fetchSingle(ctx, query, tier)
}

// SetOccupied flips the occupied flag only when it currently holds the
// opposite value, so a lost race surfaces as ErrConflict instead of a
// silent double allocation.
func (r *spotRepository) SetOccupied(ctx context.Context, id int, occupied bool) error {
	const query = `
        UPDATE parking_spots SET is_occupied=$2
        WHERE spot_id=$1 AND is_occupied=NOT $2`

	cmd, err := r.pool.Exec(ctx, query, id, occupied)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func (r *spotRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Spot, error) {
	var spot domain.Spot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&spot.ID,
		&spot.Lot,
		&spot.Tier,
		&spot.Occupied,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spot, nil
}

func scanSpots(rows pgx.Rows) ([]domain.Spot, error) {
	var result []domain.Spot
	for rows.Next() {
		var spot domain.Spot
		if err := rows.Scan(&spot.ID, &spot.Lot, &spot.Tier, &spot.Occupied); err != nil {
			return nil, err
		}
		result = append(result, spot)
	}
	return result, rows.Err()
}
