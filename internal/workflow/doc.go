// Package workflow sequences the reconciliation engine, the merge-branch
// maintainer and the VCS facade into the user-facing verbs: save, fetch,
// update, push, sync, merge, checkout, gc and friends. Every verb that moves
// the checkout does so under the scoped checkout guard.
package workflow
