package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey is returned when a unique constraint rejects a write.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrForeignKeyViolation is returned when a write or delete would break a reference.
	ErrForeignKeyViolation = errors.New("repository: foreign key violation")
)

const (
	mysqlDuplicateEntry      = 1062
	mysqlRowIsReferenced     = 1451
	mysqlNoReferencedRow     = 1452
	postgresUniqueViolation  = "23505"
	postgresForeignKeyFailed = "23503"
)

// classify maps driver and GORM errors onto the repository sentinels. Unknown
// errors pass through unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == postgresForeignKeyFailed
	}
	return false
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == postgresUniqueViolation
	}
	return false
}
