package app

import (
	"hash/fnv"

	"github.com/sweater-ventures/notifier/db"
)

// BucketOf maps a subscription to one of numBuckets delivery buckets. The
// hash input is tenant plus tenant-unique id, so every event touching the
// same subscription lands on the same worker — this is what preserves
// per-subscription ordering across restarts and N-way parallelism.
func BucketOf(tenant, id string, numBuckets int) int32 {
	h := fnv.New32a()
	h.Write([]byte(tenant))
	h.Write([]byte{'/'})
	h.Write([]byte(id))
	return int32(h.Sum32() % uint32(numBuckets))
}

// BucketOfSubscription is BucketOf applied to a stored subscription row.
func BucketOfSubscription(sub db.Subscription, numBuckets int) int32 {
	return BucketOf(sub.Tenant, sub.ID, numBuckets)
}
