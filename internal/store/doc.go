// Package store reads and writes the JSON files of the task store.
//
// Task collections are JSON objects keyed by task ID whose values are task
// objects:
//
//	{
//	  "1": {"title": "Buy milk", "username": "chenzhan"},
//	  "2": {"title": "Old", "username": "alice", "priority": 3}
//	}
//
// Records are kept as generic maps so that fields this package does not know
// about survive a load/save cycle. Numbers are decoded as json.Number and
// written back with their original text.
//
// The users file is a JSON object keyed by username:
//
//	{
//	  "chenzhan": {
//	    "password": "531020",
//	    "avatar": "😊",
//	    "created_at": "2025-08-27T00:00:00",
//	    "is_admin": true
//	  }
//	}
//
// # Shape
//
// Loaded collections are checked against an embedded JSON Schema requiring an
// object whose every value is an object. Lists, scalars, and null records are
// reported as *ShapeError rather than coerced.
//
// # File Format
//
// When writing, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Non-ASCII text written verbatim, no HTML escaping
//   - Sorted keys (via JSON marshaling of maps)
package store
