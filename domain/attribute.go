package domain

import (
	"strconv"
	"time"
)

// AttributeType enumerates the value types an attribute definition can
// declare.
type AttributeType int

const (
	AttributeString AttributeType = iota
	AttributeInt
	AttributeFloat
	AttributeBoolean
	AttributeDate
	AttributeEnum
	AttributeDocument
	AttributeFolder
	AttributeUser
	AttributeGroup
)

// AttributeDefinition describes one custom attribute from the
// repository's definition catalog.
type AttributeDefinition struct {
	ID   int
	Name string
	Type AttributeType

	// ValueSet is the delimiter-prefixed list of allowed values for
	// enum-like definitions. Its first character doubles as the
	// separator when multi-valued attributes are serialized.
	ValueSet string

	MultipleValues bool
}

// Attribute is a value attached to a node under a definition.
// Value holds string, int64, float64, bool, time.Time, *Document,
// *Folder, *User or *Group, or a slice of those for multi-valued
// definitions.
type Attribute struct {
	Def   *AttributeDefinition
	Value interface{}
}

// ScalarString renders a single attribute value the way it appears on
// the wire: ints numeric, dates as epoch timestamps, references reduced
// to their display name.
func ScalarString(t AttributeType, v interface{}) string {
	switch t {
	case AttributeInt:
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n)
		case int64:
			return strconv.FormatInt(n, 10)
		}
	case AttributeFloat:
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case AttributeBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "1"
			}
			return "0"
		}
	case AttributeDate:
		if t, ok := v.(time.Time); ok {
			if t.IsZero() {
				return ""
			}
			return strconv.FormatInt(t.Unix(), 10)
		}
	case AttributeDocument:
		if d, ok := v.(*Document); ok {
			return d.Name
		}
	case AttributeFolder:
		if f, ok := v.(*Folder); ok {
			return f.Name
		}
	case AttributeUser:
		if u, ok := v.(*User); ok {
			return u.FullName
		}
	case AttributeGroup:
		if g, ok := v.(*Group); ok {
			return g.Name
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
