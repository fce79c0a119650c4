// Package naming composes and matches local group names following the
// convention
//
//	<prefix><delimiter><object name><delimiter><suffix>
//
// where the object name is the leaf name of the filesystem target and
// the suffix identifies a permission tier (for example "R" for Read).
// A name like "AclGroup-Shared-R" therefore encodes the (path, tier)
// pair (…\Shared, Read).
//
// Matching is structured rather than pattern based: a candidate name
// matches a convention when it starts with the literal stem
// prefix+delimiter+object+delimiter and the remainder is a non-empty
// suffix. Prefixes, delimiters and object names containing regex
// metacharacters are handled like any other string.
//
// The package performs no collision validation: an object name that
// itself contains the delimiter can produce ambiguous group names, and
// it is the operator's job to pick a delimiter that does not occur in
// folder names.
package naming
