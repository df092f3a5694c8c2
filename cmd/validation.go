package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// validateArgs checks the positional arguments of the root command.
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("an input path is required")
	}
	if len(args) > 2 {
		return fmt.Errorf("expected at most 2 arguments (input and output path), got %d", len(args))
	}
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if len(args) == 2 && strings.TrimSpace(args[1]) == "" {
		return fmt.Errorf("output path must not be empty when given")
	}
	return nil
}
