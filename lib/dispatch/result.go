package dispatch

import "github.com/ValentinKolb/mrcli/lib/registry"

// InstanceResult is the outcome of a broadcast operation on one instance
type InstanceResult struct {
	Instance       registry.Instance
	Success        bool
	FailureMessage string
}

// Outcome is the aggregated result of a broadcast operation
type Outcome struct {
	AllSucceeded bool
	Messages     []string
}

// Aggregate reduces the instance results to an Outcome. The failure messages
// keep the order of results, which is the resolver order.
func Aggregate(results []InstanceResult) Outcome {
	messages := make([]string, 0)
	for _, r := range results {
		if !r.Success {
			messages = append(messages, r.FailureMessage)
		}
	}
	return Outcome{
		AllSucceeded: len(messages) == 0,
		Messages:     messages,
	}
}
