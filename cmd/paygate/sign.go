package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakpos/paygate/internal/service/webhook"
)

func signCmd() *cobra.Command {
	var (
		secret    string
		oldSecret string
		timestamp int64
	)

	cmd := &cobra.Command{
		Use:   "sign [payload-file]",
		Short: "Produce a signature header for a payload",
		Long: `Produce a Pay-Signature header for a payload, read from the given
file or stdin. Pass --old-secret to dual-sign during a rotation drill.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(args)
			if err != nil {
				return err
			}

			secret, err := resolveSecret(secret)
			if err != nil {
				return err
			}

			if timestamp == 0 {
				timestamp = time.Now().Unix()
			}

			secrets := []string{secret}
			if oldSecret != "" {
				secrets = append(secrets, oldSecret)
			}

			fmt.Fprintln(cmd.OutOrStdout(), webhook.BuildSignatureHeader(timestamp, body, secrets...))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to WEBHOOK_SECRET)")
	cmd.Flags().StringVar(&oldSecret, "old-secret", "", "previous secret to dual-sign with")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "unix timestamp to sign (defaults to now)")

	return cmd
}

func readPayload(args []string) ([]byte, error) {
	if len(args) == 1 {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read payload from stdin: %w", err)
	}
	return body, nil
}

func resolveSecret(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("WEBHOOK_SECRET"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no secret: pass --secret or set WEBHOOK_SECRET")
}
