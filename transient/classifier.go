// Package transient classifies errors returned by the SQL Server driver
// against the set of faults that Azure SQL documents as safe to retry.
//
// Classification is purely local: it inspects error numbers carried by
// the driver error and never touches the network. Callers plug IsTransient
// into whatever retry loop they already run.
package transient

import (
	"context"
	"errors"
	"net"
	"os"

	mssql "github.com/denisenkom/go-mssqldb"

	"github.com/azsqltools/sqlfault-go/throttling"
)

// Error numbers that SQL Database reports for faults expected to clear on
// their own, per the Azure SQL connectivity troubleshooting guidance:
// https://learn.microsoft.com/en-us/azure/azure-sql/database/troubleshoot-common-errors-issues
const (
	// The service is currently busy because engine throttling is in effect.
	errNumServiceThrottled = throttling.ErrorNumber

	// The service has encountered an error processing the request.
	errNumServiceError = 40540

	// Database is not currently available. Retry the connection later.
	errNumDatabaseUnavailable = 40613

	// The resource limit for the database has been reached.
	errNumResourceLimitReached = 10928

	// The server is too busy to support the requested number of sessions.
	errNumServerTooBusy = 10929

	// The service failed to process the request. Retry immediately.
	errNumServiceRequestFailed = 40143

	// The service is down due to a failover or an upgrade.
	errNumServiceReconfiguring = 40197

	// Connection initialization failed before login completed.
	errNumPreLoginFailure = 233

	// Transport-level error: the connection was aborted by the host machine.
	errNumConnectionAborted = 10053

	// Transport-level error: the connection was forcibly closed by the remote host.
	errNumConnectionReset = 10054

	// Network error: the server did not respond to the connection attempt.
	errNumConnectionTimedOut = 10060

	// The instance of SQL Server does not support encryption.
	errNumEncryptionNotSupported = 20

	// The specified network name is no longer available.
	errNumNetworkNameGone = 64
)

// Classification is the outcome of inspecting a single error.
type Classification struct {
	// Transient reports whether the failed operation is worth retrying.
	Transient bool

	// Throttling carries the decoded condition when the error was caused
	// by engine throttling, nil otherwise.
	Throttling *throttling.Condition
}

// Classify inspects err and reports whether it describes a transient fault.
//
// Driver errors are matched by error number against the table above; when a
// throttling error is found, the throttling condition decoded from its
// message is attached to the result. A driver error that batches several
// server errors together is transient if any of them is. Errors of any
// other type are transient only when they are timeouts.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}

	var driverErr mssql.Error
	if !errors.As(err, &driverErr) {
		return Classification{Transient: isTimeout(err)}
	}

	for _, sub := range serverErrors(driverErr) {
		switch sub.Number {
		case errNumServiceThrottled:
			cond := throttling.FromMessage(sub.Message)

			return Classification{Transient: true, Throttling: &cond}
		case errNumServiceError,
			errNumDatabaseUnavailable,
			errNumResourceLimitReached,
			errNumServerTooBusy,
			errNumServiceRequestFailed,
			errNumServiceReconfiguring,
			errNumPreLoginFailure,
			errNumConnectionAborted,
			errNumConnectionReset,
			errNumConnectionTimedOut,
			errNumEncryptionNotSupported,
			errNumNetworkNameGone:
			return Classification{Transient: true}
		}
	}

	return Classification{}
}

// IsTransient is a shorthand for Classify(err).Transient. Its signature
// makes it usable directly as a retry predicate.
func IsTransient(err error) bool {
	return Classify(err).Transient
}

// serverErrors returns the individual server errors batched into a driver
// error. Older driver versions leave All empty for single-error responses,
// so the error itself serves as the only element then.
func serverErrors(err mssql.Error) []mssql.Error {
	if len(err.All) > 0 {
		return err.All
	}

	return []mssql.Error{err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
