package events

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequence(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO event_sequences`)).
		WithArgs("user-1").
		WillReturnRows(mock.NewRows([]string{"last_sequence"}).AddRow(int64(7)))

	repo := NewSequenceRepository(mock)
	seq, err := repo.NextSequence(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextSequenceRequiresPartitionKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSequenceRepository(mock)
	_, err = repo.NextSequence(context.Background(), "")
	assert.Error(t, err)
}
