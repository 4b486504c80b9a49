package docstore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QueryFunc runs one document-store query and decodes its rows.
type QueryFunc[T any] func(ctx context.Context) ([]T, error)

// IsMissingIndex reports whether err is the store rejecting a query that
// needs a composite index which has not been built yet.
func IsMissingIndex(err error) bool {
	if err == nil {
		return false
	}
	if status.Code(err) == codes.FailedPrecondition {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "requires an index")
}

// QueryWithFallback runs ordered first. When that fails for a missing index
// it runs unordered and sorts the rows in memory with less. If the unordered
// query is rejected for the same reason the result is empty, not an error.
func QueryWithFallback[T any](ctx context.Context, log *logrus.Logger, collection string, ordered, unordered QueryFunc[T], less func(a, b T) bool) ([]T, error) {
	rows, err := ordered(ctx)
	if err == nil {
		return rows, nil
	}
	if !IsMissingIndex(err) {
		return nil, err
	}

	log.Warnf("Missing index on %s, retrying without ordering: %v", collection, err)

	rows, err = unordered(ctx)
	if err != nil {
		if IsMissingIndex(err) {
			log.Warnf("Missing index on %s for unordered query, returning empty result: %v", collection, err)
			return []T{}, nil
		}
		return nil, err
	}

	if less != nil {
		sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	}
	return rows, nil
}

// Collect drains it, decoding every document with decode.
func Collect[T any](it *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer it.Stop()

	rows := []T{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := decode(snap)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// IsNotFound reports whether err is a document lookup miss.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
