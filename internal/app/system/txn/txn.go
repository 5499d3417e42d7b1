// internal/app/system/txn/txn.go

// Package txn wraps multi-document MongoDB transactions and classifies
// the errors a deployment without transaction support produces
// (standalone servers, some DocumentDB versions). Callers use
// IsNotSupported to fall back to a serialized non-transactional path.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a single multi-document transaction.
// Every write fn performs through the session context commits or
// aborts as one unit; the driver retries transient write conflicts.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}

// Command error codes MongoDB returns when transactions or sessions are
// unavailable on the deployment.
const (
	codeIllegalOperation      = 20
	codeCommandNotFound       = 51 // pre-4.0 servers
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the deployment cannot
// run multi-document transactions at all (as opposed to a transaction
// that merely failed). Matching is best-effort: exact command codes
// first, then keyword pairs in the message, case-insensitively.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotFound, codeOperationNotSupported:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") {
		if strings.Contains(s, "replica set") ||
			strings.Contains(s, "session") ||
			strings.Contains(s, "illegal operation") {
			return true
		}
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
