package cmd

import (
	"github.com/spf13/cobra"
)

var configConnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a connection",
	Long:  `Add a warehouse or object store connection`,
}

func initConnAdd() {
	configConnCmd.AddCommand(configConnAddCmd)
}
