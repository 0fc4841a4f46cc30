// Package checkin reconciles a household's desired attendance for a group
// against the attendance service's roster.
//
// A Session holds the user's SelectionStore and the RosterCache for the
// active group. Commit hands both to the Reconciler, which computes the
// Delta, applies it in at most four batched calls, and then re-fetches the
// roster so that displayed status always comes from the server.
package checkin
