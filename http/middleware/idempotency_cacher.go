package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// idemResTTL bounds how long a response stays paired to its key.
const idemResTTL = 24 * time.Hour

var (
	_ IdempotencyCacher = new(IdemResMap)
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher stores responses paired to idempotency keys.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap stores idempotency key, IdemRes value pairs in memory.
//
// Server restarts reset an IdemResMap, and each process holds its own;
// prefer IdemResRedis when running more than one.
type IdemResMap struct {
	mu  sync.Mutex
	now func() time.Time
	val map[string]idemResMapVal
}

type idemResMapVal struct {
	IdemRes

	at time.Time
}

// NewIdemResMap constructs an *IdemResMap for use in Idempotent.
func NewIdemResMap() *IdemResMap {
	return &IdemResMap{now: time.Now, val: make(map[string]idemResMapVal)}
}

// Get retrieves the result of the request matching the idempotency key.
func (i *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.val[key]
	if !ok || i.now().Sub(v.at) > idemResTTL {
		return IdemRes{}, false
	}

	return v.IdemRes, true
}

// Set overwrites the value paired to key.
//
// Each call to Set evicts keys older than 24 hours.
func (i *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" || ctx.Err() != nil {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	for k, v := range i.val {
		if now.Sub(v.at) > idemResTTL {
			delete(i.val, k)
		}
	}

	at := now
	if prev, ok := i.val[key]; ok {
		at = prev.at
	}

	i.val[key] = idemResMapVal{IdemRes: idemRes, at: at}
}

// An IdemResRedis caches idempotent responses in Redis,
// sharing them across processes.
type IdemResRedis struct {
	client redis.Cmdable
}

// NewRedisCache constructs an IdemResRedis with the options passed in.
func NewRedisCache(opts *redis.Options) IdemResRedis {
	return IdemResRedis{client: redis.NewClient(opts)}
}

// NewRedisCacheFromClient constructs an IdemResRedis around an existing client.
func NewRedisCacheFromClient(client redis.Cmdable) IdemResRedis {
	return IdemResRedis{client: client}
}

// Get retrieves the IdemRes paired to key.
func (i IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	b, err := i.client.Get(ctx, idemResKey(key)).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	ir := new(IdemRes)
	if err := ir.GobDecode(b); err != nil {
		return IdemRes{}, false
	}

	return *ir, true
}

// Set pairs the IdemRes to key for 24 hours.
func (i IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" || ctx.Err() != nil {
		return
	}

	b, err := idemRes.GobEncode()
	if err != nil {
		return
	}

	i.client.Set(ctx, idemResKey(key), b, idemResTTL)
}

func idemResKey(key string) string { return "meadowlark:idempotency:" + key }
