package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	urfave "github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"
)

const (
	tokenEnvVar    = "LINKSCORE_TOKEN"
	keyringService = "linkscore"
	keyringUser    = "token"
	clearFlagName  = "clear"
	tokenFileName  = "token"
	tokenFileMode  = 0600
)

var errNoToken = errors.New("no token configured")

func newAuthCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Store a bearer token (read from stdin) used to download remote result files",
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  clearFlagName,
				Usage: "Remove the stored token",
			},
		},
		Action: cmdAuth,
	}
}

func cmdAuth(_ context.Context, cmd *urfave.Command) error {
	w := cmd.Root().Writer
	dir := getConfig(cmd).Dir

	if cmd.Bool(clearFlagName) {
		if err := clearToken(dir); err != nil {
			return err
		}
		fmt.Fprintln(w, "Token removed")
		return nil
	}

	in := cmd.Root().Reader
	if in == nil {
		in = os.Stdin
	}

	fmt.Fprint(w, "Paste token and hit enter:\n>")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return errors.New("token is empty")
	}

	if err := saveToken(dir, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Fprintln(w, "\nToken saved")
	return nil
}

func saveToken(dir, token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return os.WriteFile(filepath.Join(dir, tokenFileName), []byte(token), tokenFileMode)
	}

	// keychain wins, drop any file left by an earlier fallback
	os.Remove(filepath.Join(dir, tokenFileName))
	return nil
}

func clearToken(dir string) error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("removing token from keychain: %w", err)
	}
	if err := os.Remove(filepath.Join(dir, tokenFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// getToken returns the token from the environment, the OS keychain, or the
// fallback file in dir, in that order.
func getToken(dir string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(tokenEnvVar)); v != "" {
		return v, nil
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		slog.Debug("using token from keychain")
		return token, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		slog.Debug("keychain unavailable", "error", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, tokenFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errNoToken
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	if token = strings.TrimSpace(string(b)); token == "" {
		return "", errNoToken
	}
	return token, nil
}
