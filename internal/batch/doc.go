// Package batch computes ages for an ordered roster of people through three
// interchangeable strategies:
//
//   - ComputeWithCallback starts the batch and reports through a callback
//     that fires exactly once.
//   - ComputeFuture starts the batch and returns a Future to Await.
//   - ComputeSequential blocks and looks people up one at a time.
//
// Every per-person lookup waits for a simulated latency before computing.
// All strategies share the same contract: results come back in input order,
// an empty roster yields an empty result, and the first invalid birth date
// fails the whole batch with an error naming the person. Lookups still in
// flight when a batch fails are abandoned through context cancellation and
// their results discarded.
package batch
