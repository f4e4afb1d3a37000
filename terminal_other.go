//go:build windows || plan9 || js || wasip1

package pixmatrix

import "errors"

func TerminalSize() (cols, lines int, err error) {
	return -1, -1, errors.New("pixmatrix: terminal size not supported on this platform")
}
