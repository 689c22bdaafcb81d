// Package pgutil holds the column conversions and error checks shared by the
// gorm repositories.
package pgutil

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was raised by a unique constraint,
// whether or not the connection was opened with TranslateError.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// NullableUUID maps an optional identifier to a nullable uuid column.
// kernel.UUIDFromOptional reads it back.
func NullableUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// UUIDArray stores identifiers in a text[] column.
func UUIDArray(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// UUIDsFromArray is the inverse of UUIDArray.
func UUIDsFromArray(values pq.StringArray) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(values))
	for _, v := range values {
		id, err := kernel.UUIDFromString(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// StringArray copies values into a text[] column value; nil becomes empty.
func StringArray(values []string) pq.StringArray {
	return append(pq.StringArray{}, values...)
}
