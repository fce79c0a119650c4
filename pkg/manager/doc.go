// Package manager implements the naming-convention ACL layer: the
// orchestration that turns a filesystem target plus a set of tier
// suffixes into local group names, and drives the group directory and
// ACL store collaborators accordingly.
//
// The manager owns no state of its own. Every operation composes names
// with the configured naming convention and issues pass-through calls
// to the collaborators; the OS security descriptors and the local
// group database are the only sources of truth.
//
// Operations:
//   - CreateGroups / DeleteGroups: group lifecycle per tier suffix
//   - GrantPermissions / RevokePermissions: ACE lifecycle on the target
//   - Install / Uninstall: the two composed end-to-end, optionally
//     transactional (WithRollback)
//   - HardReset: make the target the sole ACL authority of its subtree
//   - SoftReset: strip foreign ACEs, keep convention groups and the
//     well-known principals
//   - FindNonInheritedDirectories: diagnostic sweep for directories
//     that diverged from inheritance
//
// Calls are synchronous and processed in input order; there is no
// retry, no cancellation and no cross-call locking. A failure on one
// item is recorded and does not stop later items of the same
// operation.
package manager
