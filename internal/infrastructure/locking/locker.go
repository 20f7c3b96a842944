package locking

import "context"

// OrderLocker serializes writes to one order's payment ledger. Lock
// blocks until the key is acquired or the context is done; the returned
// release function must be called exactly once.
type OrderLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
