package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medbridge/edgepipe/actions"
	"github.com/medbridge/edgepipe/config"
	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/objstore"
)

var configConnS3 = &actions.ConnectionConfig{}
var s3Conn = objstore.StoreConfig{}
var s3Dsn string

var configConnAddS3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Add an object store tier",
	Long: fmt.Sprintf(`Add an object store tier to the config store %q.

Provide a URL or supply individual flags.
Trailing slashes are trimmed and cleaned up internally.
The URL takes precedence and should be of the form:

s3://<bucket name>/<prefix>

Set a custom endpoint for S3 compatible stores such as MinIO.`,
		config.Connections.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if s3Dsn != "" { // if a DSN was supplied, let it win...
			parsed, err := objstore.ParseDSN(s3Dsn, s3Conn.Region)
			if err != nil {
				return err
			}
			s3Conn.Bucket = parsed.Bucket
			s3Conn.Prefix = parsed.Prefix
		}
		configConnS3.Type = constants.ConnectionTypeS3
		configConnS3.ConfigFile = config.Connections
		configConnS3.ConnDetails = s3Conn
		return actions.RunConnectionAdd(configConnS3)
	},
}

func init() {
	configConnAddCmd.AddCommand(configConnAddS3Cmd)
	configConnAddS3Cmd.Flags().SortFlags = false
	switches.addFlag(configConnAddS3Cmd, &configConnS3.LogicalName, "connection-name", "", true, "")
	switches.addFlag(configConnAddS3Cmd, &configConnS3.Force, "force-connection", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Dsn, "s3-dsn", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.Bucket, "s3-bucket", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.Prefix, "s3-prefix", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.Region, "s3-region", "eu-west-1", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.Endpoint, "s3-endpoint", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.AccessKeyId, "s3-key", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.SecretAccessKey, "s3-secret", "", false, "")
	switches.addFlag(configConnAddS3Cmd, &s3Conn.NameTemplate, "name-template", "", false, "")
}
