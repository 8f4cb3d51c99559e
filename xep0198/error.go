/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0198

import (
	"fmt"
)

// StructuralError signals a stanza decode attempted over an unexpected
// cursor position: the cursor was not at the stanza start tag on entry,
// or a childless stanza turned out to carry child content.
type StructuralError struct {
	Reason string
}

// Error satisfies error interface.
func (e *StructuralError) Error() string {
	return "xep0198: " + e.Reason
}

// AttributeError signals a mandatory stanza attribute that is missing
// or does not parse as its declared type.
type AttributeError struct {
	Label string
	Value string
}

// Error satisfies error interface.
func (e *AttributeError) Error() string {
	if len(e.Value) == 0 {
		return fmt.Sprintf("xep0198: missing mandatory attribute '%s'", e.Label)
	}
	return fmt.Sprintf("xep0198: malformed attribute '%s' value: %s", e.Label, e.Value)
}
