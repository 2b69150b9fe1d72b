package context

import (
	"context"

	platform "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

type contextKey string

const (
	authorizerCtxKey = contextKey("wikiflavor/authorizer/v1")
	lastErrorCtxKey  = contextKey("wikiflavor/script-error/v1")
)

// SetAuthorizer sets an authorizer on context.
func SetAuthorizer(ctx context.Context, a platform.Authorizer) context.Context {
	return context.WithValue(ctx, authorizerCtxKey, a)
}

// GetAuthorizer retrieves an authorizer from context.
func GetAuthorizer(ctx context.Context) (platform.Authorizer, error) {
	a, ok := ctx.Value(authorizerCtxKey).(platform.Authorizer)
	if !ok {
		return nil, &errors.Error{
			Msg:  "authorizer not found on context",
			Code: errors.EInternal,
		}
	}

	return a, nil
}

// errorCell is the per-request slot holding the error recorded by the last
// scripting call. The cell itself is shared through the context so that a
// later call in the same request can overwrite what an earlier one stored.
type errorCell struct {
	err error
}

// WithLastError installs a fresh last-error slot on the context. It is meant
// to be called once per request, before any scripting call runs.
func WithLastError(ctx context.Context) context.Context {
	return context.WithValue(ctx, lastErrorCtxKey, &errorCell{})
}

// SetLastError records err in the request's last-error slot, overwriting any
// previously recorded error. A nil err clears the slot. Contexts without a
// slot are left untouched.
func SetLastError(ctx context.Context, err error) {
	cell, ok := ctx.Value(lastErrorCtxKey).(*errorCell)
	if !ok {
		return
	}
	cell.err = err
}

// LastError returns the error recorded by the most recent scripting call in
// this request, or nil if no failure occurred yet.
func LastError(ctx context.Context) error {
	cell, ok := ctx.Value(lastErrorCtxKey).(*errorCell)
	if !ok {
		return nil
	}
	return cell.err
}
