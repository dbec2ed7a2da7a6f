package inventory

import (
	"crypto/tls"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// tls config key registered with the mysql driver for the inventory connection
const dbTlsKey = "palisade_inventory"

// DbUrl is the connection data for the certificate inventory database.
type DbUrl struct {
	Username string
	Password string
	Addr     string // host:port
	Name     string // database name
}

// SqlDbConnector opens the connection pool to the inventory database over
// mutual tls.
type SqlDbConnector interface {
	Connect() (*sql.DB, error)
}

func NewSqlDbConnector(url DbUrl, tlsConfig *tls.Config) SqlDbConnector {
	return &mariaDbConnector{
		url:       url,
		tlsConfig: tlsConfig,
	}
}

var _ SqlDbConnector = (*mariaDbConnector)(nil)

type mariaDbConnector struct {
	url       DbUrl
	tlsConfig *tls.Config
}

func (c *mariaDbConnector) Connect() (*sql.DB, error) {

	if err := mysql.RegisterTLSConfig(dbTlsKey, c.tlsConfig); err != nil {
		return nil, fmt.Errorf("failed to register inventory db tls config: %v", err)
	}

	cfg := mysql.NewConfig()
	cfg.User = c.url.Username
	cfg.Passwd = c.url.Password
	cfg.Net = "tcp"
	cfg.Addr = c.url.Addr
	cfg.DBName = c.url.Name
	cfg.TLSConfig = dbTlsKey

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory db connection pool: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping inventory db: %v", err)
	}

	return db, nil
}
