package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/ValentinKolb/mrcli/lib/dispatch"
	"github.com/go-redis/redis/v8"
)

// redisConnection is a single go-redis client bound to one instance and DB
type redisConnection struct {
	id       uint64
	client   *redis.Client
	factory  *RedisConnectionFactory
	hostname string
	endpoint string // socket path or port, used in error messages
}

// --------------------------------------------------------------------------
// Interface Methods (docu see dispatch.IConnection)
// --------------------------------------------------------------------------

func (c *redisConnection) Do(ctx context.Context, args ...string) (dispatch.Reply, error) {
	if len(args) == 0 {
		return dispatch.Reply{}, fmt.Errorf("empty command")
	}

	cmdArgs := make([]interface{}, len(args))
	for i, arg := range args {
		cmdArgs[i] = arg
	}

	val, err := c.client.Do(ctx, cmdArgs...).Result()
	if errors.Is(err, redis.Nil) {
		return dispatch.EmptyReply(), nil
	}
	if err != nil {
		return dispatch.Reply{}, c.classify(err)
	}

	return toReply(val), nil
}

func (c *redisConnection) Close() error {
	c.factory.open.Delete(c.id)
	return c.client.Close()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// classify maps go-redis errors to the error types of the dispatch package
func (c *redisConnection) classify(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &dispatch.ConnectionError{
			Hostname: c.hostname,
			Endpoint: c.endpoint,
			Err:      err,
		}
	}

	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return &dispatch.ResponseError{Msg: redisErr.Error()}
	}

	return err
}

// toReply converts a go-redis result to a dispatch.Reply. Nested arrays are
// flattened, nil elements become empty strings.
func toReply(val interface{}) dispatch.Reply {
	switch v := val.(type) {
	case nil:
		return dispatch.EmptyReply()
	case []interface{}:
		return dispatch.SequenceReply(flatten(v, make([]string, 0, len(v)))...)
	default:
		return dispatch.ScalarReply(formatValue(v))
	}
}

func flatten(values []interface{}, out []string) []string {
	for _, v := range values {
		if nested, ok := v.([]interface{}); ok {
			out = flatten(nested, out)
			continue
		}
		out = append(out, formatValue(v))
	}
	return out
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
