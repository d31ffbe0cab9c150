package failure

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/sijms/go-ora/v2/network"
)

// SQL Server error numbers that mean "the session is unusable".
var mssqlConnectivityNumbers = map[int32]bool{
	233:   true, // no process on the other end of the pipe
	4060:  true, // cannot open database requested by the login
	10054: true, // connection forcibly closed
	18452: true, // login from untrusted domain (integrated auth)
	18456: true, // login failed
}

var mysqlConnectivityNumbers = map[uint16]bool{
	1044: true, // access denied to database
	1045: true, // access denied for user
	1049: true, // unknown database
	1129: true, // host blocked
	1130: true, // host not allowed
}

var oracleConnectivityCodes = map[int]bool{
	1005:  true, // null password given
	1017:  true, // invalid username/password
	3113:  true, // end-of-file on communication channel
	3114:  true, // not connected to ORACLE
	12170: true, // connect timeout
	12505: true, // listener does not know of SID
	12514: true, // listener does not know of service
	12541: true, // no listener
	28000: true, // account is locked
}

// Classify wraps a driver error as Connectivity when it means the
// connection itself is broken or refused, and as Query otherwise.
// Errors already classified are returned untouched.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != Unknown {
		return err
	}
	if isConnectivity(err) {
		return NewConnectivity(op, err)
	}
	return NewQuery(op, err)
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return mssqlConnectivityNumbers[msErr.Number]
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "28", "3D": // connection_exception, invalid_authorization, invalid_catalog_name
			return true
		}
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConnectivityNumbers[myErr.Number]
	}

	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oracleConnectivityCodes[oraErr.ErrCode]
	}

	// Drivers that only surface text (e.g. TLS handshake failures).
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "broken pipe")
}
