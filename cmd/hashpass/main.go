// Command hashpass prints a bcrypt hash for AUTH_OPERATOR_PASSWORD_HASH.
//
// The password is read from the first line of stdin so it does not end up in
// shell history:
//
//	echo -n 'secret' | go run ./cmd/hashpass
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledger-backoffice/backend/internal/integration/adapters"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	password, err := readPassword(bufio.NewReader(os.Stdin))
	if err != nil {
		logger.Error("Failed to read password", "error", err)
		os.Exit(1)
	}

	hash, err := adapters.NewPasswordService(adapters.DefaultBcryptCost).Hash(password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

func readPassword(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password on stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
