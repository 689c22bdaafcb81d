package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterErrors(t *testing.T) {
	cause := errors.New("row scan failed")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("batch", "BATCH-20250301-ABCDEF"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: BATCH-20250301-ABCDEF",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("batch", "BATCH-20250301-ABCDEF", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: batch, ID is: BATCH-20250301-ABCDEF (cause: row scan failed)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("contactPhone"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: contactPhone",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("contactPhone", errors.New("not e164")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: contactPhone (cause: not e164)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("limit", 500, 1, 200),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 500 is limit, min value is 1, max value is 200",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("amount", -5, 0, "unbounded", cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -5 is amount, min value is 0, max value is unbounded (cause: row scan failed)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("orderIds"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: orderIds",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("file", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: file (cause: row scan failed)",
		},
		{
			name:     "version",
			err:      errs.NewVersionIsInvalidError("shipping attempt", "42"),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: shipping attempt 42 was modified concurrently",
		},
		{
			name:     "version with cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("batch", "B-1", errors.New("0 rows affected")),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: batch B-1 was modified concurrently (cause: 0 rows affected)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("claim attempt: %w", tt.err), tt.sentinel)
			assert.Empty(t, errs.CodeOf(tt.err))
		})
	}
}

func TestParameterErrors_Fields(t *testing.T) {
	outOfRange := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 999)
	assert.Equal(t, "quantity", outOfRange.ParamName)
	assert.Equal(t, 0, outOfRange.Value)
	assert.Equal(t, 1, outOfRange.Min)
	assert.Equal(t, 999, outOfRange.Max)
	require.NoError(t, outOfRange.Cause)

	notFound := errs.NewObjectNotFoundError("return request", 7)
	assert.Equal(t, 7, notFound.ID)
	assert.Equal(t, "object not found: %!s(int=7)", notFound.Error())
}

func TestOutOfRange_SanitizesValue(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("note", "left at\ngate", 0, 10)

	assert.Contains(t, err.Error(), "left at gate")
	assert.NotContains(t, err.Error(), "\n")
}

func TestDomainError(t *testing.T) {
	t.Run("state conflict", func(t *testing.T) {
		err := errs.NewStateConflictError("InvalidTransition", "transition is not allowed")

		assert.Equal(t, "InvalidTransition", err.Code)
		assert.Equal(t, "transition is not allowed", err.Error())
		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.NotErrorIs(t, err, errs.ErrConsistency)
	})

	t.Run("consistency", func(t *testing.T) {
		err := errs.NewConsistencyError("OverTransfer", "too much")

		require.ErrorIs(t, err, errs.ErrConsistency)
	})

	t.Run("forbidden", func(t *testing.T) {
		err := errs.NewForbiddenError("NotAssignee", "not yours")

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("sentinel survives wrapping", func(t *testing.T) {
		sentinel := errs.NewStateConflictError("AlreadyAssigned", "already assigned")
		wrapped := fmt.Errorf("%w: attempt 1", sentinel)

		require.ErrorIs(t, wrapped, sentinel)
		require.ErrorIs(t, wrapped, errs.ErrStateConflict)
		assert.Equal(t, "AlreadyAssigned", errs.CodeOf(wrapped))
	})

	t.Run("code of plain error is empty", func(t *testing.T) {
		assert.Empty(t, errs.CodeOf(errors.New("boom")))
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
		require.Error(t, errs.ErrStateConflict)
		require.Error(t, errs.ErrConsistency)
		require.Error(t, errs.ErrForbidden)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	})
}
