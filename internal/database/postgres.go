package database

import (
	"errors"
	"net"
	"net/url"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// buildPostgresDSN renders a postgres:// URL so credentials containing spaces or quotes survive intact.
func buildPostgresDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.User == "" || cfg.Name == "" {
		return "", errors.New("postgres configuration requires user and database name")
	}

	query := url.Values{"sslmode": {"disable"}}
	for key, value := range cfg.Options {
		query.Set(key, value)
	}

	user := url.User(cfg.User)
	if cfg.Password != "" {
		user = url.UserPassword(cfg.User, cfg.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     net.JoinHostPort(hostOr(cfg.Host, "localhost"), strconv.Itoa(portOr(cfg.Port, 5432))),
		Path:     "/" + cfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}

func hostOr(host, fallback string) string {
	if host == "" {
		return fallback
	}
	return host
}

func portOr(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}
