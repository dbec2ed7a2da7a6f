package inventory

import (
	"fmt"
	"reflect"
)

// scanDestinations reflects a record struct into the pointer slice rows.Scan
// needs. Record structs must declare their fields in column order, eg
// CertificateRecord mirroring the certificate table.
func scanDestinations(record interface{}) []interface{} {

	v := reflect.ValueOf(record).Elem()
	dests := make([]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		dests[i] = v.Field(i).Addr().Interface()
	}

	return dests
}

// bindValues reflects a record struct into the value slice a prepared insert
// statement needs, converting CustomTime fields to their column form.
func bindValues(record interface{}) ([]interface{}, error) {

	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record must be a struct, got %s", v.Kind())
	}

	values := make([]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		values[i] = v.Field(i).Interface()

		if ct, ok := values[i].(CustomTime); ok {
			columnValue, err := ct.Value()
			if err != nil {
				return nil, err
			}
			values[i] = columnValue
		}
	}

	return values, nil
}

// SelectRecords executes a select query and scans each row into a T, eg the
// records issued against one role.
func SelectRecords[T any](db Selector, query string, args ...interface{}) ([]T, error) {

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed execute select records query: %v", err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var record T
		if err := rows.Scan(scanDestinations(&record)...); err != nil {
			return nil, fmt.Errorf("failed to scan row into record: %v", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// SelectOneRecord executes a select query expected to match a single row and
// scans it into a T.
func SelectOneRecord[T any](db Selector, query string, args ...interface{}) (T, error) {

	var record T

	row := db.QueryRow(query, args...)
	if err := row.Scan(scanDestinations(&record)...); err != nil {
		return record, fmt.Errorf("failed to scan row into record: %v", err)
	}

	return record, nil
}

// SelectExists executes an exists query, eg checking whether a serial number
// is already in the inventory.
func SelectExists(db Selector, query string, args ...interface{}) (bool, error) {

	var exists bool
	if err := db.QueryRow(query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to scan exists query result: %v", err)
	}

	return exists, nil
}

// InsertRecord executes an insert query, binding the record struct's fields as
// the column values in declaration order.
func InsertRecord[T any](db Execer, query string, record T) error {

	values, err := bindValues(record)
	if err != nil {
		return err
	}

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(values...); err != nil {
		return fmt.Errorf("failed to execute insert query: %v", err)
	}

	return nil
}

// UpdateRecord executes an update query with the provided arguments.
func UpdateRecord(db Execer, query string, args ...interface{}) error {

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(args...); err != nil {
		return fmt.Errorf("failed to execute update query: %v", err)
	}

	return nil
}

// DeleteRecord executes a delete query with the provided arguments.
func DeleteRecord(db Execer, query string, args ...interface{}) error {

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(args...); err != nil {
		return fmt.Errorf("failed to execute delete query: %v", err)
	}

	return nil
}
