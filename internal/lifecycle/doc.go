// Package lifecycle applies call-task status transitions to caller-owned task
// collections.
//
// Every function takes a slice of tasks and returns a new slice; neither the
// input slice nor the tasks it holds are modified. A task moves
// Pending -> In Progress -> Completed. Progress only grows, and only Complete
// may set it to 100.
//
// Unknown task ids are a no-op: the returned collection equals the input.
// Callers that need a NotFound signal check with IndexOf first.
package lifecycle
