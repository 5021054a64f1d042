package dispatch

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// recorder records per invocation metrics into a metrics.Set.
// A nil recorder drops everything.
type recorder struct {
	set *metrics.Set
}

func (r *recorder) instanceDone(op AdminOp, success bool, start time.Time) {
	if r == nil || r.set == nil {
		return
	}
	r.set.GetOrCreateCounter(fmt.Sprintf(`mrcli_instance_ops_total{op=%q,status=%q}`, op.String(), status(success))).Inc()
	r.set.GetOrCreateHistogram(fmt.Sprintf(`mrcli_instance_op_duration_seconds{op=%q}`, op.String())).UpdateDuration(start)
}

func (r *recorder) broadcastDone(op AdminOp, outcome Outcome, start time.Time) {
	if r == nil || r.set == nil {
		return
	}
	r.set.GetOrCreateCounter(fmt.Sprintf(`mrcli_broadcasts_total{op=%q,status=%q}`, op.String(), status(outcome.AllSucceeded))).Inc()
	r.set.GetOrCreateHistogram(fmt.Sprintf(`mrcli_broadcast_duration_seconds{op=%q}`, op.String())).UpdateDuration(start)
}

func (r *recorder) commandDone(success bool, start time.Time) {
	if r == nil || r.set == nil {
		return
	}
	r.set.GetOrCreateCounter(fmt.Sprintf(`mrcli_commands_total{status=%q}`, status(success))).Inc()
	r.set.GetOrCreateHistogram(`mrcli_command_duration_seconds`).UpdateDuration(start)
}

func status(success bool) string {
	if success {
		return "ok"
	}
	return "failed"
}
