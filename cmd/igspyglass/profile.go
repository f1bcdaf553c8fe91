package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"igspyglass/pkg/errors"
	"igspyglass/pkg/instagram"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Resolve a profile and print it as JSON",
	Long: `Resolve a profile through the acquisition strategy chain and print the
normalized record as JSON.

Private accounts resolve with identity fields, limited-data markers, and any
salvaged content previews. A profile that does not exist or cannot be
resolved results in a non-zero exit.`,
	Example: `  # Resolve a profile
  igspyglass profile johndoe

  # Retry transient failures twice
  igspyglass profile johndoe --retries 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		username := strings.TrimSpace(args[0])
		var profile *instagram.NormalizedProfile
		err = a.withRetry(func() error {
			profile = a.resolver.Resolve(username)
			if profile == nil {
				return errors.New(errors.ErrorTypeStrategy, 0, "profile %q not resolvable", username)
			}
			return nil
		})
		if err != nil || profile == nil {
			return fmt.Errorf("could not resolve profile %q", username)
		}

		return printJSON(profile)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
