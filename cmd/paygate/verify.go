package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakpos/paygate/internal/service/webhook"
)

func verifyCmd() *cobra.Command {
	var (
		secret    string
		header    string
		tolerance time.Duration
	)

	cmd := &cobra.Command{
		Use:   "verify [payload-file]",
		Short: "Verify a payload against a signature header",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(args)
			if err != nil {
				return err
			}

			secret, err := resolveSecret(secret)
			if err != nil {
				return err
			}

			gateway := webhook.NewGateway(webhook.NewSecret(secret),
				webhook.WithTolerance(tolerance),
			)

			verdict, err := gateway.Verify(body, header)
			if err != nil {
				return fmt.Errorf("rejected: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "accepted: signed at %s\n", verdict.Timestamp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to WEBHOOK_SECRET)")
	cmd.Flags().StringVar(&header, "header", "", "signature header value (t=...,v1=...)")
	cmd.Flags().DurationVar(&tolerance, "tolerance", webhook.DefaultTolerance, "timestamp tolerance window")
	_ = cmd.MarkFlagRequired("header")

	return cmd
}
