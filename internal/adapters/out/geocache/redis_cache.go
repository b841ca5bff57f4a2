package geocache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "geo:"

// DefaultBatchSize bounds the fields sent in one HMGET or HSET.
const DefaultBatchSize = 4096

// RedisCache is a ports.GeoCache stored in Redis: one hash per vehicle type,
// field "from|to", value "distanceKm/seconds".
type RedisCache struct {
	rdb       *redis.Client
	estimator *Estimator
	ttl       time.Duration
	batch     int
}

// NewRedisCache wraps a client. A positive ttl is refreshed on every put.
func NewRedisCache(rdb *redis.Client, estimator *Estimator, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, estimator: estimator, ttl: ttl, batch: DefaultBatchSize}
}

// NewRedisCacheFromURL parses a redis:// URL and connects lazily.
func NewRedisCacheFromURL(url string, estimator *Estimator, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCache(redis.NewClient(opt), estimator, ttl), nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// PutLocationInfo estimates and stores every pair between points missing from
// the hash.
func (c *RedisCache) PutLocationInfo(ctx context.Context, points []geo.Point, vt kernel.VehicleType) error {
	if len(points) == 0 {
		return nil
	}
	key := keyPrefix + vt.String()
	fields, keys := fieldsOf(points)

	existing, err := c.hmget(ctx, key, fields)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	byID := make(map[kernel.UUID]kernel.Location, len(points))
	for _, p := range points {
		byID[p.ID] = p.Location
	}

	var missing []any
	for i, v := range existing {
		if v != nil {
			continue
		}
		cell, err := c.estimator.Estimate(byID[keys[i].from], byID[keys[i].to], vt)
		if err != nil {
			return fmt.Errorf("estimate %s: %w", fields[i], err)
		}
		missing = append(missing, fields[i], encodeCell(cell))
	}
	if len(missing) == 0 {
		return nil
	}

	pipe := c.rdb.TxPipeline()
	for start := 0; start < len(missing); start += 2 * c.batch {
		end := min(start+2*c.batch, len(missing))
		pipe.HSet(ctx, key, missing[start:end]...)
	}
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// GetPointsDataTable reads the matrix for points in one pipelined round trip.
func (c *RedisCache) GetPointsDataTable(ctx context.Context, points []geo.Point, vt kernel.VehicleType) ([][]geo.Cell, error) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	key := keyPrefix + vt.String()
	fields, _ := fieldsOf(points)

	values, err := c.hmget(ctx, key, fields)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	table := make([][]geo.Cell, n)
	for i := range table {
		table[i] = make([]geo.Cell, n)
	}
	for idx, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrPairMissing, vt, fields[idx])
		}
		cell, err := decodeCell(s)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", fields[idx], err)
		}
		table[idx/n][idx%n] = cell
	}
	return table, nil
}

// hmget reads fields in batches of at most c.batch, keeping their order.
func (c *RedisCache) hmget(ctx context.Context, key string, fields []string) ([]any, error) {
	pipe := c.rdb.Pipeline()
	cmds := make([]*redis.SliceCmd, 0, len(fields)/c.batch+1)
	for start := 0; start < len(fields); start += c.batch {
		end := min(start+c.batch, len(fields))
		cmds = append(cmds, pipe.HMGet(ctx, key, fields[start:end]...))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	values := make([]any, 0, len(fields))
	for _, cmd := range cmds {
		values = append(values, cmd.Val()...)
	}
	return values, nil
}

// fieldsOf lists every ordered pair row by row.
func fieldsOf(points []geo.Point) ([]string, []pairKey) {
	fields := make([]string, 0, len(points)*len(points))
	keys := make([]pairKey, 0, cap(fields))
	for _, from := range points {
		for _, to := range points {
			k := pairKey{from: from.ID, to: to.ID}
			keys = append(keys, k)
			fields = append(fields, k.field())
		}
	}
	return fields, keys
}

func encodeCell(c geo.Cell) string {
	return strconv.FormatFloat(c.DistanceKm, 'f', -1, 64) + "/" + strconv.FormatInt(int64(c.Time/time.Second), 10)
}

func decodeCell(s string) (geo.Cell, error) {
	dist, secs, ok := strings.Cut(s, "/")
	if !ok {
		return geo.Cell{}, fmt.Errorf("malformed value %q", s)
	}
	km, err := strconv.ParseFloat(dist, 64)
	if err != nil {
		return geo.Cell{}, err
	}
	sec, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return geo.Cell{}, err
	}
	return geo.Cell{DistanceKm: km, Time: time.Duration(sec) * time.Second}, nil
}
