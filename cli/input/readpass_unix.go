//go:build !windows

package input

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readSecurePassword reads secret with prompt directly from /dev/tty, so
// that it works when stdin is redirected.
func readSecurePassword(prompt string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("no terminal to read secret from: %w", err)
	}
	defer tty.Close()
	if _, err = tty.WriteString(prompt); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(int(tty.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	_, err = tty.WriteString("\n")
	return string(secret), err
}
