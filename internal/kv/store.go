// Package kv provides the bounded key-value medium the state core persists
// into. It is the localStorage analogue: string keys, string values, bounded
// capacity, best-effort durability across restarts.
package kv

import "errors"

var (
	// ErrQuotaExceeded reports that a write would push the store past its
	// configured capacity.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store describes the persistence operations required by the state core.
// Get returns ok=false when the key is absent; Set replaces the value whole.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
