package channel

import "context"

// Runner drives a whole channel through the pipeline, oldest video first,
// resuming from persisted state. Every stage transition is saved before
// the next stage starts, so interrupting a run and starting it again
// repeats no completed work.
type Runner interface {
	Process(ctx context.Context, url string) error
}
