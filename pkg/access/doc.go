// Package access computes site visibility and operation authorization.
//
// VisibleSites resolves which sites a user may see from direct permission
// grants and group membership. Authorize gates operations by the user's
// access level tier. Both are pure functions over their inputs and carry
// no state, so they need no synchronization and can be called from any
// number of requests concurrently.
package access
