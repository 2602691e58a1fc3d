package config

// Mode is the immutable run configuration selected by command-line flags.
type Mode struct {
	// Safe gates every mutating operation behind a y/N/s prompt.
	Safe bool
	// Auto prefers unattended heuristics, renders the interdiff with jj's
	// :git tool and picks the first candidate when disambiguating.
	Auto bool
}

// Unattended returns a copy of the mode with confirmations disabled.
// Heuristic-driven actions run with this mode.
func (m Mode) Unattended() Mode {
	m.Safe = false
	return m
}

// Interactive returns a copy of the mode that renders diffs without the
// external tool, as the interdiff menu entry does.
func (m Mode) Interactive() Mode {
	m.Auto = false
	return m
}
