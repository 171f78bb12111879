// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import "encoding/gob"

func init() {
	// scs serializes session values with gob.
	gob.Register(Expansion{})
}

// Expansion records explicit open/closed choices per group base path.
// Groups the user never toggled follow the current path.
type Expansion map[string]bool

// IsExpanded reports whether group should render open while viewing current.
func (x Expansion) IsExpanded(group Entry, current string) bool {
	if open, ok := x[group.Path]; ok {
		return open
	}
	return Under(current, group.Path)
}

// Toggle flips the state of group relative to what would render now and
// returns the new value.
func (x Expansion) Toggle(group Entry, current string) bool {
	open := !x.IsExpanded(group, current)
	x[group.Path] = open
	return open
}

// Clone returns a copy safe to mutate.
func (x Expansion) Clone() Expansion {
	out := make(Expansion, len(x))
	for k, v := range x {
		out[k] = v
	}
	return out
}
