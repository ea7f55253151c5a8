// Package wip implements the WIP ref reconciliation engine: classifying refs
// into WIP identities, diffing local against remote WIP state to decide what
// must be pushed or deleted, and maintaining the per-base MERGE branch whose
// history is an append-only audit log of folded-in WIP commits.
package wip
