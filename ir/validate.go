package ir

import "fmt"

// ValidateDffConnections checks the §4.D invariant that a Dff cell has
// exactly the connections D, Q, CLK, plus RST/EN iff the kind's flags say
// so. Other cell kinds are not validated by this helper.
func ValidateDffConnections(c Cell, names func(NameID) string) error {
	if c.Kind.Tag != TagDff {
		return nil
	}

	want := map[string]bool{"D": true, "Q": true, "CLK": true}
	if c.Kind.HasReset {
		want["RST"] = true
	}
	if c.Kind.HasEnable {
		want["EN"] = true
	}

	seen := make(map[string]bool, len(c.Connections))
	for _, conn := range c.Connections {
		n := names(conn.PortName)
		seen[n] = true
		if !want[n] {
			return fmt.Errorf("ir: dff cell %q has unexpected connection %q", names(c.Name), n)
		}
	}
	for n := range want {
		if !seen[n] {
			return fmt.Errorf("ir: dff cell %q missing required connection %q", names(c.Name), n)
		}
	}
	return nil
}
