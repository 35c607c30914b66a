package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Commands to manage content units",
	Long: `Commands to manage content units.

Content units are immutable and shared across repositories of a domain:
registering the same natural key twice yields the same unit.`,
}

func init() {
	rootCmd.AddCommand(contentCmd)
}

// parsePairs turns repeated key=value flags into a map
func parsePairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			wrapFatalln("expected key=value, got: "+pair, nil)
			continue
		}
		m[parts[0]] = parts[1]
	}
	return m
}
