package inventory

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"
)

// mockSelector implements the Selector interface for testing.
type mockSelector struct {
	queryFunc    func(query string, args ...interface{}) (*sql.Rows, error)
	queryRowFunc func(query string, args ...interface{}) *sql.Row
}

func (m *mockSelector) Query(query string, args ...interface{}) (*sql.Rows, error) {
	if m.queryFunc != nil {
		return m.queryFunc(query, args...)
	}
	return nil, errors.New("queryFunc not implemented")
}

func (m *mockSelector) QueryRow(query string, args ...interface{}) *sql.Row {
	if m.queryRowFunc != nil {
		return m.queryRowFunc(query, args...)
	}
	return nil
}

// mockExecer implements the Execer interface for testing.
type mockExecer struct {
	execFunc    func(query string, args ...interface{}) (sql.Result, error)
	prepareFunc func(query string) (*sql.Stmt, error)
}

func (m *mockExecer) Exec(query string, args ...interface{}) (sql.Result, error) {
	if m.execFunc != nil {
		return m.execFunc(query, args...)
	}
	return nil, errors.New("execFunc not implemented")
}

func (m *mockExecer) Prepare(query string) (*sql.Stmt, error) {
	if m.prepareFunc != nil {
		return m.prepareFunc(query)
	}
	return nil, errors.New("prepareFunc not implemented")
}

func TestSelectRecordsQueryError(t *testing.T) {

	mock := &mockSelector{
		queryFunc: func(query string, args ...interface{}) (*sql.Rows, error) {
			return nil, errors.New("database connection failed")
		},
	}

	_, err := SelectRecords[CertificateRecord](mock, "SELECT * FROM certificate")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed execute select records query") {
		t.Errorf("expected wrapped query error, got %q", err.Error())
	}
}

func TestSelectRecordsPassesQueryAndArgs(t *testing.T) {

	var capturedQuery string
	var capturedArgs []interface{}

	mock := &mockSelector{
		queryFunc: func(query string, args ...interface{}) (*sql.Rows, error) {
			capturedQuery = query
			capturedArgs = args
			return nil, errors.New("test complete")
		},
	}

	qry := "SELECT * FROM certificate WHERE role_name = ? AND revoked = ?"
	_, _ = SelectRecords[CertificateRecord](mock, qry, "web-server", false)

	if capturedQuery != qry {
		t.Errorf("expected query %q, got %q", qry, capturedQuery)
	}
	if len(capturedArgs) != 2 {
		t.Fatalf("expected 2 args, got %d", len(capturedArgs))
	}
	if capturedArgs[0].(string) != "web-server" {
		t.Errorf("expected first arg web-server, got %v", capturedArgs[0])
	}
	if capturedArgs[1].(bool) != false {
		t.Errorf("expected second arg false, got %v", capturedArgs[1])
	}
}

func TestScanDestinations(t *testing.T) {

	var record CertificateRecord
	dests := scanDestinations(&record)

	// one destination per certificate table column
	if len(dests) != 7 {
		t.Fatalf("expected 7 scan destinations, got %d", len(dests))
	}

	// destinations must address the record's fields
	*dests[0].(*string) = "uuid-value"
	if record.Uuid != "uuid-value" {
		t.Error("first destination does not address the uuid field")
	}
	*dests[3].(*string) = "17:67:16:b0"
	if record.SerialNumber != "17:67:16:b0" {
		t.Error("fourth destination does not address the serial number field")
	}
}

func TestBindValues(t *testing.T) {

	expires := CustomTime{time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	record := CertificateRecord{
		Uuid:         "uuid-value",
		RoleName:     "web-server",
		CommonName:   "api.myvault.com",
		SerialNumber: "17:67:16:b0",
		Expires:      expires,
		Revoked:      false,
		CreatedAt:    CustomTime{},
	}

	values, err := bindValues(record)
	if err != nil {
		t.Fatalf("failed to bind record values: %v", err)
	}

	if len(values) != 7 {
		t.Fatalf("expected 7 bound values, got %d", len(values))
	}
	if values[1].(string) != "web-server" {
		t.Errorf("expected role name value, got %v", values[1])
	}

	// CustomTime fields convert to the column format
	if values[4] != "2026-08-30 12:00:00" {
		t.Errorf("expected formatted expires value, got %v", values[4])
	}

	// zero CustomTime converts to NULL
	if values[6] != nil {
		t.Errorf("expected nil value for zero created_at, got %v", values[6])
	}
}

func TestBindValuesRejectsNonStruct(t *testing.T) {

	if _, err := bindValues("not a struct"); err == nil {
		t.Error("expected error for non-struct record")
	}
}

func TestInsertRecordPrepareError(t *testing.T) {

	var capturedQuery string
	mock := &mockExecer{
		prepareFunc: func(query string) (*sql.Stmt, error) {
			capturedQuery = query
			return nil, errors.New("syntax error")
		},
	}

	qry := "INSERT INTO certificate (uuid) VALUES (?)"
	err := InsertRecord(mock, qry, CertificateRecord{Uuid: "uuid-value"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to prepare insert statement") {
		t.Errorf("expected wrapped prepare error, got %q", err.Error())
	}
	if capturedQuery != qry {
		t.Errorf("expected query %q, got %q", qry, capturedQuery)
	}
}

func TestInsertRecordRejectsNonStruct(t *testing.T) {

	prepared := false
	mock := &mockExecer{
		prepareFunc: func(query string) (*sql.Stmt, error) {
			prepared = true
			return nil, errors.New("should not be reached")
		},
	}

	if err := InsertRecord(mock, "INSERT INTO certificate VALUES (?)", "not a struct"); err == nil {
		t.Fatal("expected error for non-struct record")
	}
	if prepared {
		t.Error("binding must fail before the statement is prepared")
	}
}

func TestUpdateRecordPrepareError(t *testing.T) {

	mock := &mockExecer{
		prepareFunc: func(query string) (*sql.Stmt, error) {
			return nil, errors.New("deadlock")
		},
	}

	err := UpdateRecord(mock, "UPDATE certificate SET revoked = TRUE WHERE serial_number = ?", "17:67")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to prepare update statement") {
		t.Errorf("expected wrapped prepare error, got %q", err.Error())
	}
}

func TestDeleteRecordPrepareError(t *testing.T) {

	mock := &mockExecer{
		prepareFunc: func(query string) (*sql.Stmt, error) {
			return nil, errors.New("table locked")
		},
	}

	err := DeleteRecord(mock, "DELETE FROM certificate WHERE serial_number = ?", "17:67")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to prepare delete statement") {
		t.Errorf("expected wrapped prepare error, got %q", err.Error())
	}
}
