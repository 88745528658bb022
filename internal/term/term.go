// term.go detects whether a file descriptor is an interactive
// terminal, grounded on the teacher's golang.org/x/sys dependency.
// corvidtool uses this to decide whether to colorize REPL prompts and
// AST dumps, rather than the teacher's printer.go, which hardcodes
// ANSI yellow unconditionally. The actual ioctl request number is
// platform-specific; see term_linux.go / term_other.go.

package term

import "golang.org/x/sys/unix"

// IsTerminal reports whether fd refers to a terminal device.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlGetTermios)
	return err == nil
}
