package repository

import (
	"testing"

	"github.com/Astemirdum/driver-rating/pkg/storage"
	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInsertQuery(t *testing.T) {
	t.Parallel()
	req := model.CreateRating{Plate: "AAA-1111", Score: 1, Comment: "really bad driver"}
	tests := []struct {
		dialect storage.Dialect
		want    string
	}{
		{dialect: storage.DialectPostgres, want: "INSERT INTO rating (plate,score,comment) VALUES ($1,$2,$3) RETURNING id"},
		{dialect: storage.DialectSQLite, want: "INSERT INTO rating (plate,score,comment) VALUES (?,?,?) RETURNING id"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.dialect), func(t *testing.T) {
			t.Parallel()
			r, err := NewRepository(&storage.DB{Dialect: tt.dialect}, zap.NewNop())
			require.NoError(t, err)

			q, args, err := r.insertQuery(req)
			require.NoError(t, err)
			require.Equal(t, tt.want, q)
			require.Equal(t, []any{"AAA-1111", 1, "really bad driver"}, args)
		})
	}
}

func TestConstraintError_Postgres(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{
			name:   "varchar overflow",
			err:    &pgconn.PgError{Code: pgerrcode.StringDataRightTruncationDataException},
			reason: "rating value is too long",
		},
		{
			name:   "not null",
			err:    &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "comment"},
			reason: "comment is required",
		},
		{
			name:   "not null without column",
			err:    &pgconn.PgError{Code: pgerrcode.NotNullViolation},
			reason: "rating is required",
		},
		{
			name:   "check",
			err:    errors.Wrap(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "rating_score_check"}, "insert"),
			reason: "rating violates constraint rating_score_check",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := constraintError(tt.err)
			require.ErrorIs(t, err, errs.ErrValidation)
			require.EqualError(t, err, tt.reason)
		})
	}
}

func TestConstraintError_NotAConstraint(t *testing.T) {
	t.Parallel()
	require.NoError(t, constraintError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	require.NoError(t, constraintError(errors.New("connection reset")))
}
