// Package logging defines the small structured-logging seam used by the
// jsonproc walkers. The walkers never log on their own; callers inject a
// [Logger] (for example via jsonproc.LogFailures) and this package supplies
// the common implementations: a zap-backed production logger, a no-op
// logger, and an in-memory [Capture] recorder for tests.
package logging
