package flow

import "slices"

// TypeAny is the wildcard port type, compatible with everything on
// either side of a connection.
const TypeAny = "any"

// Well-known port types used by the editor's module palette.
const (
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeData    = "data"
	TypeControl = "control"
	TypeEvent   = "event"
	TypeAccount = "account"
)

// compatTable maps a source port type to the target types it may feed
// beyond exact equality. The table is directed and intentionally
// asymmetric: number→string holds, string→number holds, but
// string→boolean does not.
var compatTable = map[string][]string{
	TypeNumber:  {TypeString, TypeBoolean},
	TypeString:  {TypeNumber},
	TypeData:    {TypeAny},
	TypeControl: {TypeEvent},
	TypeEvent:   {TypeControl},
}

// Compatible reports whether a source port of type sourceType may
// connect to a target port of type targetType. The wildcard "any"
// matches on either side; otherwise equality or a table entry is
// required.
func Compatible(sourceType, targetType string) bool {
	if sourceType == TypeAny || targetType == TypeAny {
		return true
	}
	if sourceType == targetType {
		return true
	}
	return slices.Contains(compatTable[sourceType], targetType)
}
