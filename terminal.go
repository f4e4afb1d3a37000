//go:build !windows && !plan9 && !js && !wasip1

package pixmatrix

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminalSize returns the columns and lines of the terminal attached to
// stderr. Stdout is usually redirected when previewing a pipeline.
func TerminalSize() (cols, lines int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1, err
	}
	return int(ws.Col), int(ws.Row), nil
}
