package storage

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key
	ErrKeyNotFound = errors.New("storage.key_not_found")

	// ErrFailedToParseRedisConnString indicates the Redis connection URL is malformed
	ErrFailedToParseRedisConnString = errors.New("storage.failed_to_parse_redis_conn_string")

	// ErrRedisNotReady indicates the Redis server did not respond to ping within the configured attempts
	ErrRedisNotReady = errors.New("storage.redis_not_ready")
)
