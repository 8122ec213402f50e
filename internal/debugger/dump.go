package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/mmu"
)

// Dump writes n bytes read from bus starting at from, 16 per line,
// each line prefixed by the address of its first byte. Reads wrap
// around at 0xFFFF.
func Dump(w io.Writer, bus mmu.Bus, from uint16, n int) error {
	var line strings.Builder
	for i := 0; i < n; i += 16 {
		line.Reset()
		start := from + uint16(i)
		fmt.Fprintf(&line, "%04x:", start)
		for j := 0; j < 16 && i+j < n; j++ {
			fmt.Fprintf(&line, " %02x", bus.Read(start+uint16(j)))
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}
	return nil
}
