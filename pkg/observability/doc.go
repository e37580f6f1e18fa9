/*
Package observability provides tools for monitoring renders.

It turns domain.LifecycleHooks into Prometheus metrics and structured log
lines, and merges several hook sets into one.
*/
package observability
