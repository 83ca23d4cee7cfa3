// Package models defines the core domain models for the poker ledger.
//
// # Models
//
//   - Player: a registered player, referenced by participations across sessions
//   - Session: one poker session, owning its participations
//   - Participation: one player's financial activity within one session,
//     owning its buy-ins
//   - BuyIn: a single addition of money to a player's stack
//
// # Design Principles
//
//  1. **Explicit ownership**: Session owns Participations, Participation owns
//     BuyIns; a Participation references its Player by ID only. Deleting a
//     session cascades downward, never to players.
//  2. **Avoid circular references**: relationships use ID strings instead of
//     pointers.
//  3. **Fresh derived values**: totals and profits are methods computed from
//     current owned data on every call, never cached, so mutating a child is
//     immediately visible in the parent's aggregates.
//
// All monetary amounts are signed int64 whole currency units; there is no
// fractional currency. Timestamps are Unix seconds.
package models
