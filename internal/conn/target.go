package conn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"
)

const (
	AuthIntegrated = "integrated" // Windows / Kerberos authentication
	AuthSQL        = "sql"        // user + password
)

// Target describes one database instance to connect to.
type Target struct {
	Driver   string            `mapstructure:"driver" yaml:"driver"`
	Host     string            `mapstructure:"host" yaml:"host"`
	Port     int               `mapstructure:"port" yaml:"port,omitempty"`
	Database string            `mapstructure:"database" yaml:"database"`
	Auth     string            `mapstructure:"auth" yaml:"auth,omitempty"`
	User     string            `mapstructure:"user" yaml:"user,omitempty"`
	Password string            `mapstructure:"password" yaml:"-"`
	DSN      string            `mapstructure:"dsn" yaml:"-"` // used verbatim when set
	Params   map[string]string `mapstructure:"params" yaml:"params,omitempty"`
}

// DriverName returns the database/sql driver name for t.Driver.
func (t Target) DriverName() (string, error) {
	switch strings.ToLower(t.Driver) {
	case "", "sqlserver", "mssql":
		return "sqlserver", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "oracle":
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", t.Driver)
	}
}

// String is the display label used in logs and script headers.
func (t Target) String() string {
	return fmt.Sprintf("%s [%s]", t.Host, t.Database)
}

func (t Target) authMode() string {
	if t.Auth != "" {
		return strings.ToLower(t.Auth)
	}
	if t.User == "" {
		return AuthIntegrated
	}
	return AuthSQL
}

// DataSourceName builds the connection string for the target's driver.
func (t Target) DataSourceName() (string, error) {
	if t.DSN != "" {
		return t.DSN, nil
	}

	driver, err := t.DriverName()
	if err != nil {
		return "", err
	}
	if t.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	if t.Database == "" {
		return "", fmt.Errorf("database is required")
	}

	mode := t.authMode()
	if mode != AuthIntegrated && mode != AuthSQL {
		return "", fmt.Errorf("unknown auth mode %q (use %q or %q)", t.Auth, AuthIntegrated, AuthSQL)
	}
	if mode == AuthIntegrated && driver != "sqlserver" {
		return "", fmt.Errorf("integrated authentication is only supported for sqlserver")
	}

	switch driver {
	case "sqlserver":
		return t.mssqlDSN(mode), nil
	case "postgres":
		return t.postgresDSN(), nil
	case "oracle":
		return t.oracleDSN(), nil
	default:
		return t.mysqlDSN(), nil
	}
}

// mssqlDSN builds a sqlserver:// URL. A "host\instance" host becomes the
// URL path; leaving out the user makes go-mssqldb use integrated auth.
func (t Target) mssqlDSN(mode string) string {
	query := url.Values{}
	query.Add("database", t.Database)
	query.Add("TrustServerCertificate", "true")
	for k, v := range t.Params {
		query.Set(k, v)
	}

	host, instance, _ := strings.Cut(t.Host, `\`)
	if t.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(t.Port))
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     host,
		RawQuery: query.Encode(),
	}
	if instance != "" {
		u.Path = instance
	}
	if mode == AuthSQL {
		u.User = url.UserPassword(t.User, t.Password)
	}
	return u.String()
}

func (t Target) postgresDSN() string {
	query := url.Values{}
	query.Add("sslmode", "disable")
	for k, v := range t.Params {
		query.Set(k, v)
	}

	host := t.Host
	if t.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(t.Port))
	}

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.User, t.Password),
		Host:     host,
		Path:     "/" + t.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (t Target) mysqlDSN() string {
	port := t.Port
	if port == 0 {
		port = 3306
	}

	cfg := mysql.NewConfig()
	cfg.User = t.User
	cfg.Passwd = t.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(t.Host, strconv.Itoa(port))
	cfg.DBName = t.Database
	if len(t.Params) > 0 {
		cfg.Params = make(map[string]string, len(t.Params))
		for k, v := range t.Params {
			cfg.Params[k] = v
		}
	}
	return cfg.FormatDSN()
}

// oracleDSN builds an oracle:// URL. Database is the service name.
func (t Target) oracleDSN() string {
	port := t.Port
	if port == 0 {
		port = 1521
	}
	return go_ora.BuildUrl(t.Host, port, t.Database, t.User, t.Password, t.Params)
}
