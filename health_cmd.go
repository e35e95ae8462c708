package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/locallab/voicestudio/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Voice Studio server is reachable",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		client, err := api.NewClient(serverURL)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		h, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("server at %s is not healthy: %w", client.BaseURL(), err)
		}
		fmt.Printf("%s: %s (model %s, version %s)\n", client.BaseURL(), h.Status, h.Model, h.Version)

		status, err := client.System(ctx)
		if err != nil {
			return nil // health is up, hardware probe is best effort
		}
		fmt.Printf("hardware: %s\n", status.Message)
		return nil
	},
}
