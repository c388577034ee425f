package database

import (
	"net/url"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSNDefaults(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{User: "workoutdiary", Name: "workoutdiary"})
	require.NoError(t, err)
	require.Equal(t, "postgres://workoutdiary@localhost:5432/workoutdiary?sslmode=disable", dsn)
}

func TestBuildPostgresDSNWithOptions(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "user",
		Name:     "db",
		Host:     "db.example.com",
		Port:     6543,
		Password: "p@ss word",
		Options: map[string]string{
			"sslmode":     "require",
			"search_path": "public",
		},
	})
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	require.Equal(t, "db.example.com:6543", u.Host)
	require.Equal(t, "/db", u.Path)
	require.Equal(t, "user", u.User.Username())
	pw, _ := u.User.Password()
	require.Equal(t, "p@ss word", pw)
	require.Equal(t, "require", u.Query().Get("sslmode"))
	require.Equal(t, "public", u.Query().Get("search_path"))
}

func TestBuildPostgresDSNOverride(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{DSN: "host=override"})
	require.NoError(t, err)
	require.Equal(t, "host=override", dsn)
}

func TestBuildPostgresDSNRequiresUserAndName(t *testing.T) {
	_, err := buildPostgresDSN(Config{})
	require.Error(t, err)
}

func TestBuildMySQLDSNDefaults(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "workoutdiary", Name: "workoutdiary"})
	require.NoError(t, err)

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "workoutdiary", parsed.User)
	require.Equal(t, "tcp", parsed.Net)
	require.Equal(t, "127.0.0.1:3306", parsed.Addr)
	require.Equal(t, "workoutdiary", parsed.DBName)
	require.True(t, parsed.ParseTime)
	require.Contains(t, dsn, "charset=utf8mb4")
}

func TestBuildMySQLDSNWithOptions(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "user",
		Password: "secret",
		Name:     "db",
		Host:     "db.example.com",
		Port:     3307,
		Options:  map[string]string{"charset": "utf8"},
	})
	require.NoError(t, err)

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "secret", parsed.Passwd)
	require.Equal(t, "db.example.com:3307", parsed.Addr)
	require.Contains(t, dsn, "charset=utf8")
	require.NotContains(t, dsn, "utf8mb4")
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	_, err := buildMySQLDSN(Config{Host: "localhost"})
	require.Error(t, err)
}
