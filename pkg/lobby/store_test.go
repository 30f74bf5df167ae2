package lobby

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func Test_maybeConflict(t *testing.T) {
	passThrough := errors.New("some other error")
	duplicateKey := &pq.Error{Code: pqDuplicateKeyErrorCode}

	tests := []struct {
		name    string
		err     error
		expects error
	}{
		{"lock not available", &pq.Error{Code: pqLockNotAvailable}, ErrConcurrencyConflict},
		{"serialization failure", &pq.Error{Code: pqSerializationFailure}, ErrConcurrencyConflict},
		{"deadlock detected", &pq.Error{Code: pqDeadlockDetected}, ErrConcurrencyConflict},
		{"lock wait timed out", context.DeadlineExceeded, ErrConcurrencyConflict},
		{"unrelated pq error", duplicateKey, duplicateKey},
		{"unrelated error", passThrough, passThrough},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expects, maybeConflict(tt.err))
		})
	}
}
