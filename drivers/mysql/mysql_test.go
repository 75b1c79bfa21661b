package mysql

import (
	"context"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/maxwell-launcher/drivers/base"
	"github.com/datazip-inc/maxwell-launcher/types"
)

func TestDSN(t *testing.T) {
	m := New(base.NewBase(1), &types.MySQLConfig{
		User:     "maxwell",
		Password: "p@ss:word/1",
		Host:     "db.internal",
		Database: "orders",
		Port:     13306,
	})

	parsed, err := mysqldriver.ParseDSN(m.DSN())
	require.NoError(t, err)

	assert.Equal(t, "maxwell", parsed.User)
	assert.Equal(t, "p@ss:word/1", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:13306", parsed.Addr)
	assert.Equal(t, "orders", parsed.DBName)
	assert.Equal(t, dialTimeout, parsed.Timeout)
	assert.Equal(t, "mysql", m.Type())
}

func TestCheck_Unreachable(t *testing.T) {
	driver := base.NewBase(2)
	driver.RetrySleep = time.Millisecond
	m := New(driver, &types.MySQLConfig{User: "u", Password: "p", Host: "127.0.0.1", Database: "d", Port: 9})

	err := m.Check(context.Background())
	assert.ErrorContains(t, err, "failed to connect to mysql at 127.0.0.1:9")
}
