package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakpos/paygate/internal/service/webhook"
)

func secretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Generate a new signing secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := webhook.GenerateSecret()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
}
