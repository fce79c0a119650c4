package naming

import "strings"

// Convention defaults used when nothing is configured.
const (
	DefaultPrefix    = "AclGroup"
	DefaultDelimiter = "-"
)

// Spec holds the four parts a group name is concatenated from.
// It is derived per call and never persisted.
type Spec struct {
	Prefix     string
	Delimiter  string
	ObjectName string
	Suffix     string
}

// GroupName returns the composed group name
// prefix+delimiter+object+delimiter+suffix.
func (s Spec) GroupName() string {
	return s.Prefix + s.Delimiter + s.ObjectName + s.Delimiter + s.Suffix
}

// Compose builds a group name from its four parts.
func Compose(prefix, delimiter, objectName, suffix string) string {
	return Spec{
		Prefix:     prefix,
		Delimiter:  delimiter,
		ObjectName: objectName,
		Suffix:     suffix,
	}.GroupName()
}

// Convention is a (prefix, delimiter) pair. All names for one managed
// tree share a convention; only the object name and suffix vary.
type Convention struct {
	Prefix    string
	Delimiter string
}

// Default returns the default convention ("AclGroup", "-").
func Default() Convention {
	return Convention{Prefix: DefaultPrefix, Delimiter: DefaultDelimiter}
}

// Stem returns the invariant leading portion of every group name for
// the object: prefix+delimiter+object+delimiter.
func (c Convention) Stem(objectName string) string {
	return c.Prefix + c.Delimiter + objectName + c.Delimiter
}

// GroupName composes the full group name for an object and suffix.
func (c Convention) GroupName(objectName, suffix string) string {
	return c.Stem(objectName) + suffix
}

// Match reports whether name follows the convention for objectName and,
// if so, returns the trailing suffix. The comparison is a literal
// string-prefix test, so metacharacters in any part are inert.
func (c Convention) Match(name, objectName string) (suffix string, ok bool) {
	stem := c.Stem(objectName)
	if !strings.HasPrefix(name, stem) {
		return "", false
	}
	suffix = name[len(stem):]
	if suffix == "" {
		return "", false
	}
	return suffix, true
}
