// Package geocache implements ports.GeoCache.
//
// PutLocationInfo fills every missing ordered pair between the given points
// with an Estimator; GetPointsDataTable only reads and fails with
// ErrPairMissing when a pair was never put. Two stores are provided:
//
//   - RedisCache keeps one hash per vehicle type in Redis, shared by every
//     planner instance
//   - MemoryCache keeps the same data in process, used when no Redis URL is
//     configured and in tests; pairs idle for longer than the ttl are dropped
//
// Example:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	cache := geocache.NewRedisCache(rdb, geocache.NewEstimator(), 24*time.Hour)
//	planner, err := services.NewPlanner(cache, services.DefaultPlannerOptions(), logger)
package geocache
