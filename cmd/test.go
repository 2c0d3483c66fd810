package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity and credentials for the configured services",
	Long: `Authenticate against every configured service that has a client secret.
Services without a secret are reported as read-only.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	type target struct {
		name         string
		secret       string
		authenticate func(context.Context, string) error
	}

	var targets []target
	if annoClient != nil {
		targets = append(targets, target{"annosaurus", cfg.Annosaurus.ClientSecret, annoClient.Authenticate})
	}
	if panoptesClient != nil {
		targets = append(targets, target{"panoptes", cfg.Panoptes.ClientSecret, panoptesClient.Authenticate})
	}
	if catalogClient != nil {
		targets = append(targets, target{"vampiresquid", cfg.VampireSquid.ClientSecret, catalogClient.Authenticate})
	}

	var failures int
	for _, tgt := range targets {
		if tgt.secret == "" {
			fmt.Printf("- %s: configured (read-only, no client secret)\n", tgt.name)
			continue
		}
		if err := tgt.authenticate(ctx, tgt.secret); err != nil {
			fmt.Printf("✗ %s: authentication failed: %v\n", tgt.name, err)
			failures++
			continue
		}
		fmt.Printf("✓ %s: authenticated\n", tgt.name)
	}

	if failures > 0 {
		return fmt.Errorf("%d service(s) failed authentication", failures)
	}
	return nil
}
