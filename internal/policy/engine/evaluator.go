package engine

import "context"

// Input is the caller and target of a single RPC. Role is empty for anonymous callers.
type Input struct {
	Method    string
	AccountID string
	Role      string
}

// Authorizer decides whether a caller may invoke a method.
type Authorizer interface {
	Authorize(ctx context.Context, in Input) (bool, error)
}
