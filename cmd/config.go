package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medbridge/edgepipe/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure connections",
	Long: fmt.Sprintf(`Configure the warehouse and object store connections where:

- Connections are stored encrypted in file %q
`, config.Connections.FullPath),
}

func init() {
	rootCmd.AddCommand(configCmd)
}
