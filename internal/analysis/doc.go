// Package analysis turns the engine's root requirements into the reports a
// player reads: which creatures are satisfied, what each rarity tier still
// needs, which ancestor limits each wishlist creature, which roots several
// wishlist creatures compete for, and how fast deficits are shrinking.
//
// Everything here is read-only over its inputs.
package analysis
