// Package config reads the per-repository gitwip configuration,
// including the machine owner id, candidate remotes, and the
// merge-branch divergence policy.
package config
