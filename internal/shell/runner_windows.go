//go:build windows

package shell

// defaultShell returns the shell program and command flag used on windows.
func defaultShell() (program, flag string) {
	return "cmd", "/C"
}
