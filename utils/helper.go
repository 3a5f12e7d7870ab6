package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/medilinkhq/pharmacy_backend/config"
)

// PharmacyLock serializes stock write paths per pharmacy via redis.
// The database row locks inside the ledger transaction are the correctness
// guarantee; this mutex keeps concurrent writers from piling up on those
// locks. When redis is not configured the lock degrades to a no-op.
//
// The caller must invoke the returned release func when the write path ends.
func PharmacyLock(ctx context.Context, pharmacyId string, lockType string, moduleName string, functionName string) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	logger := config.GetLogger()
	lockKey := fmt.Sprintf("%s:%s", lockType, pharmacyId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "could not obtain lock for pharmacy", pharmacyId, err)
		return nil, fmt.Errorf("could not obtain stock lock for pharmacy %s", pharmacyId)
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "error obtaining lock for pharmacy", pharmacyId, err)
		return nil, err
	}

	return func() { _ = lock.Release(ctx) }, nil
}

// Ptr returns a pointer to v. Handy for optional struct fields.
func Ptr[T any](v T) *T {
	return &v
}

// UniqueSlice returns s with duplicates removed, first occurrence kept.
func UniqueSlice[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
