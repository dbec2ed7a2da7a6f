package inventory

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"
)

// Selector is the query surface the generic select functions need. *sql.DB and
// *sql.Tx both satisfy it; tests substitute a mock.
type Selector interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Execer is the mutation surface the insert/update/delete functions need.
// *sql.DB and *sql.Tx both satisfy it; tests substitute a mock.
type Execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
}

// mariadb DATETIME column format
const sqlTimeFormat = "2006-01-02 15:04:05"

// CustomTime scans the inventory's DATETIME columns (expires, created_at) to
// UTC and writes them back in the column format. A NULL column scans to the
// zero time; a zero time writes back as NULL.
type CustomTime struct {
	time.Time
}

// Scan implements the sql.Scanner interface.
func (ct *CustomTime) Scan(value interface{}) error {

	switch v := value.(type) {
	case nil:
		ct.Time = time.Time{}
		return nil
	case []byte:
		t, err := time.Parse(sqlTimeFormat, string(v))
		if err != nil {
			return fmt.Errorf("failed to parse datetime column: %v", err)
		}
		ct.Time = t.UTC()
		return nil
	case string:
		t, err := time.Parse(sqlTimeFormat, v)
		if err != nil {
			return fmt.Errorf("failed to parse datetime column: %v", err)
		}
		ct.Time = t.UTC()
		return nil
	case time.Time:
		ct.Time = v.UTC()
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T for datetime column", value)
	}
}

// Value implements the driver.Valuer interface.
func (ct CustomTime) Value() (driver.Value, error) {
	if ct.IsZero() {
		return nil, nil
	}
	return ct.UTC().Format(sqlTimeFormat), nil
}
