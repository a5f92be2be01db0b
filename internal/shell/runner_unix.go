//go:build unix

package shell

// defaultShell returns the shell program and command flag used on unix.
func defaultShell() (program, flag string) {
	return "/bin/sh", "-c"
}
