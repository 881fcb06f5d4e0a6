package db

import (
	"fmt"
	"log"

	"github.com/dgraph-io/ristretto"
)

// Cached derived data is keyed per user so that a mutation only evicts
// that user's entries.
var Cache *ristretto.Cache

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func TransactionCacheKey(userID int64) string {
	return fmt.Sprintf("transactions:%d", userID)
}

func SummaryCacheKey(userID int64) string {
	return fmt.Sprintf("summary:%d", userID)
}

func SetTransactionCache(cacheKey string, value interface{}) {
	Cache.Set(cacheKey, value, 1)
}

func SetSummaryCache(cacheKey string, value interface{}) {
	Cache.Set(cacheKey, value, 1)
}

// InvalidateUserSummaryCache drops one user's cached summary snapshot.
// Budget mutations change the snapshot's budget feed without touching
// the transaction list, so only the snapshot is evicted.
func InvalidateUserSummaryCache(userID int64) {
	Cache.Del(SummaryCacheKey(userID))
}

// InvalidateUserCaches drops the cached transaction list and summary
// snapshot for one user. Called after every transaction mutation.
func InvalidateUserCaches(userID int64) {
	Cache.Del(TransactionCacheKey(userID))
	InvalidateUserSummaryCache(userID)
}
