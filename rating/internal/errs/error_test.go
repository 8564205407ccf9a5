package errs_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	t.Parallel()
	_, atoiErr := strconv.Atoi("abc")

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{
			name:    "validation",
			err:     &errs.ValidationError{Field: "comment", Reason: "must be at most 255 characters"},
			kind:    errs.ErrValidation,
			message: "comment must be at most 255 characters",
		},
		{
			name:    "parse",
			err:     &errs.ParseError{Field: "score", Value: "abc", Err: atoiErr},
			kind:    errs.ErrParse,
			message: `score must be an integer, got "abc"`,
		},
		{
			name:    "storage",
			err:     &errs.StorageError{Op: "create rating", Err: context.DeadlineExceeded},
			kind:    errs.ErrStorage,
			message: "create rating: context deadline exceeded",
		},
	}
	all := []error{errs.ErrValidation, errs.ErrParse, errs.ErrStorage}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.EqualError(t, tt.err, tt.message)
			for _, kind := range all {
				require.Equal(t, kind == tt.kind, errors.Is(tt.err, kind), kind.Error())
			}
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	err := &errs.StorageError{Op: "list ratings", Err: context.Canceled}
	require.ErrorIs(t, err, context.Canceled)
}
