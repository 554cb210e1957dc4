// Package script drives an editing engine from scripted input.
//
// Two forms are supported. YAML scripts list steps declaratively:
//
//	name: half
//	steps:
//	  - insert: frac
//	  - text: "1"
//	  - right
//	  - text: "2"
//	  - commit
//
// Lua macros (see RunLua) call the same operations imperatively and can
// inspect the markup between edits.
//
// Both run against a Target, which *engine.Engine satisfies.
package script
