package events

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out monotonically increasing sequence numbers
// per partition key, so consumers can detect gaps and reordering.
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type sequenceDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type sequenceRepository struct {
	db sequenceDB
}

func NewSequenceRepository(db sequenceDB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	const query = `
INSERT INTO event_sequences (partition_key, last_sequence, updated_at)
VALUES ($1, 1, NOW())
ON CONFLICT (partition_key) DO UPDATE
SET last_sequence = event_sequences.last_sequence + 1,
    updated_at = NOW()
RETURNING last_sequence
`

	var next int64
	if err := r.db.QueryRow(ctx, query, partitionKey).Scan(&next); err != nil {
		return 0, fmt.Errorf("increment sequence: %w", err)
	}
	return next, nil
}
