package client

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/mrcli/lib/dispatch"
	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/ValentinKolb/mrcli/rpc/common"
	"github.com/ValentinKolb/mrcli/rpc/transport"
	"github.com/ValentinKolb/mrcli/rpc/transport/tcp"
	"github.com/ValentinKolb/mrcli/rpc/transport/unix"
	"github.com/go-redis/redis/v8"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	Logger = logger.GetLogger("rpc")

	redisLoggerOnce sync.Once
)

// redisLogger forwards the internal messages of go-redis to the rpc logger
type redisLogger struct{}

func (redisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

// RedisConnectionFactory implements dispatch.IConnectionFactory with go-redis.
// Every Connect creates a dedicated client with a single connection, no retries
// and, unless configured, no timeouts.
type RedisConnectionFactory struct {
	config common.ClientConfig
	tcp    transport.IClientConnector
	unix   transport.IClientConnector
	open   *xsync.MapOf[uint64, *redis.Client]
	nextID uint64 // Atomic counter for connection IDs
}

// NewRedisConnectionFactory creates a connection factory for the given configuration
func NewRedisConnectionFactory(config common.ClientConfig) *RedisConnectionFactory {
	redisLoggerOnce.Do(func() { redis.SetLogger(redisLogger{}) })

	return &RedisConnectionFactory{
		config: config,
		tcp:    tcp.NewTCPClientConnector(config),
		unix:   unix.NewUnixClientConnector(config),
		open:   xsync.NewMapOf[uint64, *redis.Client](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see dispatch.IConnectionFactory)
// --------------------------------------------------------------------------

func (f *RedisConnectionFactory) Connect(_ context.Context, instance registry.Instance, db int, useUnixSocket bool) (dispatch.IConnection, error) {
	connector := f.tcp
	if useUnixSocket {
		connector = f.unix
	}

	addr, err := connector.Endpoint(instance)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Network: connector.GetName(),
		Addr:    addr,
		DB:      db,
		Dialer: func(ctx context.Context, _, addr string) (net.Conn, error) {
			return connector.Connect(ctx, addr)
		},
		MaxRetries:   -1,
		PoolSize:     1,
		ReadTimeout:  f.ioTimeout(),
		WriteTimeout: f.ioTimeout(),
	})

	id := atomic.AddUint64(&f.nextID, 1)
	f.open.Store(id, client)

	Logger.Debugf("created client %d for %s (db %d) via %s", id, addr, db, connector.GetName())

	return &redisConnection{
		id:       id,
		client:   client,
		factory:  f,
		hostname: instance.Hostname,
		endpoint: instance.Endpoint(useUnixSocket),
	}, nil
}

// Close closes all connections that have not been closed by their owner
func (f *RedisConnectionFactory) Close() error {
	var firstErr error
	f.open.Range(func(id uint64, client *redis.Client) bool {
		f.open.Delete(id)
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// ioTimeout converts the configured timeout to the go-redis convention,
// where -1 disables the timeout.
func (f *RedisConnectionFactory) ioTimeout() time.Duration {
	if t := f.config.Timeout(); t > 0 {
		return t
	}
	return -1
}
