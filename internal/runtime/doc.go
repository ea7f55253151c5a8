// Package runtime provides the per-invocation execution context threaded
// through every workflow and VCS-facade call: the git runner, logger,
// configuration, and the dry-run flag. Constructed once per process
// invocation; there is no ambient global state.
package runtime
