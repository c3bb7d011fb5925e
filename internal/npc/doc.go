// Package npc composes a non-player character from its initialization
// subsystems and drives them through a readiness coordinator.
//
// The subsystems here are simulations: each one signals after a configured
// delay, optionally with an error, twice, or never. CharacterData fans its
// work out over several table loaders before it signals.
package npc
