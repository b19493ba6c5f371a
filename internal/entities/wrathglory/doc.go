// Package wrathglory holds the Wrath & Glory character property catalogues
// used by the XP optimizer: Tier, the seven Attributes, the eighteen Skills
// and the eight derived Traits, together with their rating bounds and the
// per-rank XP cost schedules.
//
// Catalogues are immutable and safe for concurrent reads. Lookups return
// (value, ok) instead of an invalid placeholder member.
package wrathglory
