package inventory

import (
	"database/sql"
)

// Repository defines the interface for certificate inventory database operations.
type Repository interface {

	// InsertCertificate inserts a new issued-certificate record into the inventory.
	InsertCertificate(record CertificateRecord) error

	// FindBySerial retrieves an inventory record by certificate serial number.
	FindBySerial(serialNumber string) (CertificateRecord, error)

	// SerialExists reports whether a record already exists for the serial
	// number, eg before inserting a fresh issuance.
	SerialExists(serialNumber string) (bool, error)

	// FindActiveByRole retrieves the unexpired, unrevoked records issued
	// against a role.
	FindActiveByRole(roleName string) ([]CertificateRecord, error)

	// MarkRevoked flags the record with the provided serial number as revoked.
	MarkRevoked(serialNumber string) error

	// DeleteBySerial removes an inventory record by certificate serial number.
	DeleteBySerial(serialNumber string) error
}

// NewRepository creates a new instance of Repository, returning an underlying concrete impl.
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

var _ Repository = (*repository)(nil)

// repository is the concrete implementation of the Repository interface.
type repository struct {
	db *sql.DB
}

func (r *repository) InsertCertificate(record CertificateRecord) error {

	qry := `
		INSERT INTO certificate (
			uuid,
			role_name,
			common_name,
			serial_number,
			expires,
			revoked,
			created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	return InsertRecord(r.db, qry, record)
}

func (r *repository) FindBySerial(serialNumber string) (CertificateRecord, error) {

	qry := `
		SELECT
			uuid,
			role_name,
			common_name,
			serial_number,
			expires,
			revoked,
			created_at
		FROM certificate
		WHERE serial_number = ?`

	return SelectOneRecord[CertificateRecord](r.db, qry, serialNumber)
}

func (r *repository) SerialExists(serialNumber string) (bool, error) {

	qry := `
		SELECT EXISTS (
			SELECT 1
			FROM certificate
			WHERE serial_number = ?
		)`

	return SelectExists(r.db, qry, serialNumber)
}

func (r *repository) FindActiveByRole(roleName string) ([]CertificateRecord, error) {

	qry := `
		SELECT
			uuid,
			role_name,
			common_name,
			serial_number,
			expires,
			revoked,
			created_at
		FROM certificate
		WHERE role_name = ?
			AND revoked = FALSE
			AND expires > UTC_TIMESTAMP()`

	return SelectRecords[CertificateRecord](r.db, qry, roleName)
}

func (r *repository) MarkRevoked(serialNumber string) error {

	qry := `
		UPDATE certificate
		SET revoked = TRUE
		WHERE serial_number = ?`

	return UpdateRecord(r.db, qry, serialNumber)
}

func (r *repository) DeleteBySerial(serialNumber string) error {

	qry := `
		DELETE FROM certificate
		WHERE serial_number = ?`

	return DeleteRecord(r.db, qry, serialNumber)
}
