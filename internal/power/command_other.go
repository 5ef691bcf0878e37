//go:build !windows

package power

func platformCommand() (string, []string) {
	return "shutdown", []string{"-h", "now"}
}
