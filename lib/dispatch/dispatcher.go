package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/sourcegraph/conc"
)

var Logger = logger.GetLogger("dispatch")

// Dispatcher executes commands against the instances known to a resolver
type Dispatcher struct {
	resolver IResolver
	factory  IConnectionFactory
	out      io.Writer
	metrics  *recorder
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithMetrics records invocation metrics into the given set
func WithMetrics(set *metrics.Set) Option {
	return func(d *Dispatcher) {
		d.metrics = &recorder{set: set}
	}
}

// NewDispatcher creates a dispatcher that prints replies to out
func NewDispatcher(resolver IResolver, factory IConnectionFactory, out io.Writer, options ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		factory:  factory,
		out:      out,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// --------------------------------------------------------------------------
// Single Target
// --------------------------------------------------------------------------

// ExecuteOne sends command to the instance hosting the logical database and
// prints the reply. The command is not validated, the store decides whether
// it is valid. Every error is returned unrecovered.
func (d *Dispatcher) ExecuteOne(ctx context.Context, database string, command []string, namespace string, unixSocket bool) (err error) {
	start := time.Now()
	defer func() { d.metrics.commandDone(err == nil, start) }()

	_, useUnixSocket, err := d.resolver.Resolve(namespace, unixSocket)
	if err != nil {
		return err
	}

	db, err := d.resolver.LookupDatabase(namespace, database)
	if err != nil {
		return err
	}

	Logger.Debugf("sending %s to database %s (%s db %d, unix socket: %t)",
		commandName(command), db.Name, db.Instance, db.Index, useUnixSocket)

	conn, err := d.factory.Connect(ctx, db.Instance, db.Index, useUnixSocket)
	if err != nil {
		return err
	}
	defer conn.Close()

	reply, err := conn.Do(ctx, command...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(d.out, reply.Format())
	return err
}

// --------------------------------------------------------------------------
// Broadcast
// --------------------------------------------------------------------------

// workerResult is what a broadcast worker hands back to the join step
type workerResult struct {
	result InstanceResult
	err    error // unexpected error, aborts the invocation
}

// ExecuteAll runs an administrative operation on every instance of the
// namespace concurrently, one goroutine per instance, and waits for all of
// them. Unreachable instances are reported on out in resolver order and
// ErrInstancesFailed is returned. Any other error of a worker is returned
// without printing anything.
func (d *Dispatcher) ExecuteAll(ctx context.Context, namespace string, op string, unixSocket bool) error {
	adminOp, err := ParseAdminOp(op)
	if err != nil {
		return err
	}

	instances, useUnixSocket, err := d.resolver.Resolve(namespace, unixSocket)
	if err != nil {
		return err
	}

	start := time.Now()
	Logger.Debugf("broadcasting %s to %d instance(s) (unix socket: %t)", adminOp, len(instances), useUnixSocket)

	// one goroutine per instance, each writes only its own index
	workers := make([]workerResult, len(instances))
	var wg conc.WaitGroup
	for i, inst := range instances {
		wg.Go(func() {
			workers[i] = d.runAdminOp(ctx, inst, adminOp, useUnixSocket)
		})
	}
	wg.Wait()

	results := make([]InstanceResult, len(workers))
	for i, w := range workers {
		if w.err != nil {
			return w.err
		}
		results[i] = w.result
	}

	outcome := Aggregate(results)
	d.metrics.broadcastDone(adminOp, outcome, start)

	if !outcome.AllSucceeded {
		if _, err := fmt.Fprintln(d.out, strings.Join(outcome.Messages, "\n")); err != nil {
			return err
		}
		return ErrInstancesFailed
	}

	_, err = fmt.Fprintln(d.out, adminOp.SuccessToken())
	return err
}

// runAdminOp connects to one instance and executes the operation on it.
// Connection failures become a failed InstanceResult, everything else is
// returned as error.
func (d *Dispatcher) runAdminOp(ctx context.Context, inst registry.Instance, op AdminOp, useUnixSocket bool) workerResult {
	start := time.Now()
	endpoint := inst.Endpoint(useUnixSocket)

	failed := func(reason string) workerResult {
		Logger.Warningf("%s failed on %s:%s: %s", op, inst.Hostname, endpoint, reason)
		d.metrics.instanceDone(op, false, start)
		return workerResult{result: InstanceResult{
			Instance:       inst,
			Success:        false,
			FailureMessage: refusedMessage(inst.Hostname, endpoint),
		}}
	}

	var connErr *ConnectionError

	conn, err := d.factory.Connect(ctx, inst, 0, useUnixSocket)
	if errors.As(err, &connErr) {
		return failed(connErr.Error())
	} else if err != nil {
		return workerResult{err: err}
	}
	defer conn.Close()

	reply, err := conn.Do(ctx, op.String())
	if errors.As(err, &connErr) {
		return failed(connErr.Error())
	} else if err != nil {
		return workerResult{err: err}
	}

	// a falsy acknowledgment is reported like an unreachable instance
	if !reply.Truthy() {
		return failed(fmt.Sprintf("falsy reply %q", reply.Format()))
	}

	Logger.Debugf("%s succeeded on %s:%s", op, inst.Hostname, endpoint)
	d.metrics.instanceDone(op, true, start)
	return workerResult{result: InstanceResult{Instance: inst, Success: true}}
}

func commandName(command []string) string {
	if len(command) == 0 {
		return "<empty command>"
	}
	return command[0]
}
