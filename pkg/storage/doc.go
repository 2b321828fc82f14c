// Package storage provides the key/value persistence layer used to keep
// authenticated sessions across process restarts.
//
// The Store interface is deliberately tiny (Get/Set/Remove) so any host
// environment can supply its own adapter. Two implementations ship with the
// SDK:
//
//   - MemoryStore: an in-process map, used as the fallback when the host
//     supplies nothing. State is lost on restart.
//   - RedisStore: a go-redis backed adapter for server-side hosts that need
//     durable or shared session state.
//
// Basic usage:
//
//	store := storage.NewMemoryStore()
//	if err := store.Set(ctx, "basekit.session", payload); err != nil {
//		// handle error
//	}
//
// Absent keys are reported as ErrKeyNotFound, never as empty values.
package storage
