package dispatch

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/ValentinKolb/mrcli/lib/registry"
)

// fakeBehavior describes how the fake factory behaves for one hostname
type fakeBehavior struct {
	connectErr error
	doErr      error
	reply      *Reply
	delay      time.Duration
}

type connectCall struct {
	instance      registry.Instance
	db            int
	useUnixSocket bool
	goroutine     uint64
}

// fakeFactory is an in-memory IConnectionFactory
type fakeFactory struct {
	mu        sync.Mutex
	behaviors map[string]fakeBehavior
	connects  []connectCall
	commands  [][]string
	closed    int
	onDo      func(ctx context.Context) error
}

func newFakeFactory(behaviors map[string]fakeBehavior) *fakeFactory {
	if behaviors == nil {
		behaviors = map[string]fakeBehavior{}
	}
	return &fakeFactory{behaviors: behaviors}
}

func (f *fakeFactory) Connect(_ context.Context, instance registry.Instance, db int, useUnixSocket bool) (IConnection, error) {
	f.mu.Lock()
	f.connects = append(f.connects, connectCall{instance: instance, db: db, useUnixSocket: useUnixSocket, goroutine: goroutineID()})
	b := f.behaviors[instance.Hostname]
	f.mu.Unlock()

	if b.connectErr != nil {
		return nil, b.connectErr
	}
	return &fakeConn{factory: f, behavior: b}, nil
}

func (f *fakeFactory) connectCalls() []connectCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]connectCall(nil), f.connects...)
}

type fakeConn struct {
	factory  *fakeFactory
	behavior fakeBehavior
}

func (c *fakeConn) Do(ctx context.Context, args ...string) (Reply, error) {
	c.factory.mu.Lock()
	c.factory.commands = append(c.factory.commands, args)
	onDo := c.factory.onDo
	c.factory.mu.Unlock()

	if onDo != nil {
		if err := onDo(ctx); err != nil {
			return Reply{}, err
		}
	}
	if c.behavior.delay > 0 {
		time.Sleep(c.behavior.delay)
	}
	if c.behavior.doErr != nil {
		return Reply{}, c.behavior.doErr
	}
	if c.behavior.reply != nil {
		return *c.behavior.reply, nil
	}
	if len(args) > 0 && args[0] == "PING" {
		return ScalarReply("PONG"), nil
	}
	return ScalarReply("OK"), nil
}

func (c *fakeConn) Close() error {
	c.factory.mu.Lock()
	defer c.factory.mu.Unlock()
	c.factory.closed++
	return nil
}

// fakeResolver returns a fixed instance list
type fakeResolver struct {
	instances []registry.Instance
	databases map[string]registry.Database
	err       error
}

func (r *fakeResolver) Resolve(namespace string, unixSocket bool) ([]registry.Instance, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	return r.instances, unixSocket || namespace != "", nil
}

func (r *fakeResolver) LookupDatabase(namespace, name string) (registry.Database, error) {
	db, ok := r.databases[name]
	if !ok {
		return registry.Database{}, &registry.InvalidDatabaseError{Name: name, Namespace: namespace}
	}
	return db, nil
}

func refused(hostname, endpoint string) error {
	return &ConnectionError{Hostname: hostname, Endpoint: endpoint, Err: errors.New("connect: connection refused")}
}

func replyPtr(r Reply) *Reply { return &r }

// goroutineID parses the id of the calling goroutine from its stack header
// ("goroutine 42 [running]:")
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return 0
	}
	id, _ := strconv.ParseUint(string(fields[1]), 10, 64)
	return id
}
