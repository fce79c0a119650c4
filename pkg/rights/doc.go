// Package rights defines the fixed permission tiers granted to
// convention-named groups and how each tier maps onto Windows NTFS
// access masks and ACE propagation flags.
//
// The mapping is deliberately rigid: every group created by this tool
// represents exactly one (path, tier) pair, and every tier corresponds
// to exactly one access mask. There is no per-group mask customization.
//
// Key concepts:
//   - Tier: Read < Write < Modify < FullControl (fixed masks, not a hierarchy)
//   - AppliesTo: propagation scope of an ACE (this folder only, this folder
//     plus subfolders and files, inherit-only variants)
//   - Well-known principals: SYSTEM and CREATOR OWNER, which reset
//     operations treat specially
package rights
