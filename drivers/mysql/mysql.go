package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-mysql-org/go-mysql/mysql"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/datazip-inc/maxwell-launcher/drivers/base"
	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/types"
)

const dialTimeout = 10 * time.Second

// MySQL probes the bound MySQL instance the way Maxwell will use it
type MySQL struct {
	*base.Driver
	config *types.MySQLConfig
}

type variable struct {
	Name  string `db:"Variable_name"`
	Value string `db:"Value"`
}

type binlogStatus struct {
	File     string `db:"File"`
	Position uint32 `db:"Position"`
}

func New(driver *base.Driver, config *types.MySQLConfig) *MySQL {
	return &MySQL{
		Driver: driver,
		config: config,
	}
}

func (m *MySQL) Type() string {
	return "mysql"
}

// DSN returns the go-sql-driver connection string for the bound instance
func (m *MySQL) DSN() string {
	cfg := mysqldriver.NewConfig()
	cfg.User = m.config.User
	cfg.Passwd = m.config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))
	cfg.DBName = m.config.Database
	cfg.Timeout = dialTimeout

	return cfg.FormatDSN()
}

// Check connects, requires row based binary logging and reports the current binlog position
func (m *MySQL) Check(ctx context.Context) error {
	var client *sqlx.DB
	err := m.Retry(ctx, func() error {
		var err error
		client, err = sqlx.ConnectContext(ctx, "mysql", m.DSN())
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to connect to mysql at %s:%d: %s", m.config.Host, m.config.Port, err)
	}
	defer client.Close()

	var format variable
	if err := client.GetContext(ctx, &format, "SHOW VARIABLES LIKE 'binlog_format'"); err != nil {
		return fmt.Errorf("failed to read binlog_format: %s", err)
	}
	if !strings.EqualFold(format.Value, "ROW") {
		return fmt.Errorf("binlog_format is %q, Maxwell requires ROW", format.Value)
	}

	position, err := m.binlogPosition(ctx, client)
	if err != nil {
		return err
	}

	logger.Infof("mysql %s:%d reachable, binlog_format=%s, binlog position %s", m.config.Host, m.config.Port, format.Value, position)
	return nil
}

func (m *MySQL) binlogPosition(ctx context.Context, client *sqlx.DB) (gomysql.Position, error) {
	var status binlogStatus
	// MySQL 8.4 removed SHOW MASTER STATUS
	queries := []string{"SHOW MASTER STATUS", "SHOW BINARY LOG STATUS"}

	var err error
	for _, query := range queries {
		err = client.Unsafe().QueryRowxContext(ctx, query).StructScan(&status)
		if err == nil {
			return gomysql.Position{Name: status.File, Pos: status.Position}, nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			return gomysql.Position{}, fmt.Errorf("binary logging is disabled on %s", m.config.Host)
		}
	}

	return gomysql.Position{}, fmt.Errorf("failed to read binlog position: %s", err)
}
