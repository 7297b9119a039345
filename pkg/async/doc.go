// Package async provides small generic helpers for running computations concurrently.
//
// Future represents the eventual result of an operation started with Async. Callers wait
// with Await or AwaitContext, or poll with IsComplete. Resolved builds an already
// completed Future, handy when a caller expects a Future but the answer is known.
//
// All fans a function out over a slice of inputs and fails fast: the first error cancels
// the context seen by the remaining calls, and results are returned in input order only
// when every call succeeded.
//
//	entries, err := async.All(ctx, keys, func(ctx context.Context, key string) (Entry, error) {
//	    return load(ctx, key)
//	})
//
// Panics inside asynchronous functions are recovered and reported as ErrPanic.
package async
