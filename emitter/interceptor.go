package emitter

import "context"

// Next continues to the next interceptor, or to the listener dispatch at the
// end of the chain, and returns the settled result.
type Next func(ctx context.Context, event Event) *DispatchResult

// Interceptor wraps a whole dispatch. Useful for logging, tracing, and
// event filtering. Registered with Use; outermost first.
type Interceptor func(ctx context.Context, event Event, next Next) *DispatchResult
