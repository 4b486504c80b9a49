package docstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func rowsOf(rows ...int) QueryFunc[int] {
	return func(ctx context.Context) ([]int, error) { return rows, nil }
}

func failWith(err error) QueryFunc[int] {
	return func(ctx context.Context) ([]int, error) { return nil, err }
}

func desc(a, b int) bool { return a > b }

var errIndex = status.Error(codes.FailedPrecondition, "The query requires an index. You can create it here: ...")

func TestIsMissingIndex(t *testing.T) {
	assert.True(t, IsMissingIndex(errIndex))
	assert.True(t, IsMissingIndex(errors.New("rpc error: query requires an index")))
	assert.False(t, IsMissingIndex(status.Error(codes.Unavailable, "down")))
	assert.False(t, IsMissingIndex(nil))
}

func TestQueryWithFallback_OrderedSucceeds(t *testing.T) {
	unordered := func(ctx context.Context) ([]int, error) {
		t.Fatal("unordered query must not run")
		return nil, nil
	}

	rows, err := QueryWithFallback(context.Background(), quietLogger(), "supplies", rowsOf(3, 2, 1), unordered, desc)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, rows)
}

func TestQueryWithFallback_SortsInMemory(t *testing.T) {
	rows, err := QueryWithFallback(context.Background(), quietLogger(), "supplies", failWith(errIndex), rowsOf(1, 3, 2), desc)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, rows)
}

func TestQueryWithFallback_EmptyWhenRetryAlsoMissesIndex(t *testing.T) {
	rows, err := QueryWithFallback(context.Background(), quietLogger(), "supplies", failWith(errIndex), failWith(errIndex), desc)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQueryWithFallback_OtherErrorsPropagate(t *testing.T) {
	boom := status.Error(codes.Unavailable, "unavailable")

	_, err := QueryWithFallback(context.Background(), quietLogger(), "supplies", failWith(boom), rowsOf(1), desc)
	assert.ErrorIs(t, err, boom)

	_, err = QueryWithFallback(context.Background(), quietLogger(), "supplies", failWith(errIndex), failWith(boom), desc)
	assert.ErrorIs(t, err, boom)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(status.Error(codes.NotFound, "missing")))
	assert.False(t, IsNotFound(errors.New("other")))
}
