package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/helper"
)

type cliFlag struct {
	name      string // name of flag
	val       string // default value
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"file": cliFlag{name: "file", shortHand: "f",
		desc: "File containing the exchange metadata (.yaml or .json) that names the \n" +
			"staged artifacts and the workspace they belong to"},
	"scratch-dir": cliFlag{name: "scratch-dir", shortHand: "s",
		desc: "Directory holding the staged artifact files named by the exchange metadata"},
	"warehouse": cliFlag{name: "warehouse", shortHand: "w",
		desc: "Connection name of the warehouse to bulk-load reshaped records into"},
	"remote-store": cliFlag{name: "remote-store", shortHand: "r",
		desc: "Connection name of the data lake object store next to the warehouse"},
	"local-store": cliFlag{name: "local-store", shortHand: "c",
		desc: "Connection name of the on-prem cache object store; the identity mapping \n" +
			"registry lives in this tier too"},
	"schema": cliFlag{name: "schema", shortHand: "S",
		desc: "Target schema name (omit to use the connection default)"},
	"table": cliFlag{name: "table", shortHand: "t",
		desc: "Target table to load reshaped records into"},
	"batch-size": cliFlag{name: "batch-size", shortHand: "B",
		desc: "Number of rows combined into a single INSERT statement"},
	"registry-object": cliFlag{name: "registry-object", shortHand: "g",
		desc: "Object name of the identity mapping registry log in the local store \n" +
			"(omit to use the default)"},
	"skip-load": cliFlag{name: "skip-load", shortHand: "L",
		desc: "Skip the warehouse load stage and only sync artifacts to object storage"},
	"skip-metadata": cliFlag{name: "skip-metadata", shortHand: "M",
		desc: "Do not upload the metadata attachment named in the exchange"},
	"skip-registry": cliFlag{name: "skip-registry", shortHand: "R",
		desc: "Do not record patient identifier mappings in the registry"},
	"fail-fast": cliFlag{name: "fail-fast", shortHand: "F",
		desc: "Stop the run at the first failed artifact instead of continuing with the rest"},
	"log-level": cliFlag{name: "log-level", shortHand: "l",
		desc: "Log level: \"error | warn | info | debug\""},
	"port": cliFlag{name: "port", shortHand: "p",
		desc: "Port to listen on"},
	"connection-name": cliFlag{name: "connection-name", shortHand: "c",
		desc: "Connection name referred to by pipeline runs"},
	"dsn": cliFlag{name: "dsn", shortHand: "d",
		desc: "Snowflake connect string of the form \n" +
			"snowflake://<user>:<password>@<account>/<database>?schema=<schema>&warehouse=<warehouse>"},
	"s3-dsn": cliFlag{name: "dsn", shortHand: "d",
		desc: "DSN of the form s3://<bucket name>/<prefix> (takes priority over individual flags)"},
	"s3-bucket": cliFlag{name: "s3-bucket", shortHand: "b",
		desc: "Bucket name for the object store tier"},
	"s3-prefix": cliFlag{name: "s3-prefix", shortHand: "P",
		desc: "Bucket prefix prepended to every object key"},
	"s3-region": cliFlag{name: "s3-region", shortHand: "R",
		desc: "Bucket region"},
	"s3-endpoint": cliFlag{name: "s3-endpoint", shortHand: "e",
		desc: "Custom endpoint for S3 compatible stores such as MinIO \n" +
			"(leave blank for the default AWS endpoint)"},
	"s3-key": cliFlag{name: "s3-key", shortHand: "K",
		desc: "Access key that can use the bucket (or set AWS_ACCESS_KEY_ID)"},
	"s3-secret": cliFlag{name: "s3-secret", shortHand: "X",
		desc: "Secret access key that can use the bucket (or set AWS_SECRET_ACCESS_KEY)"},
	"name-template": cliFlag{name: "name-template", shortHand: "T",
		desc: "Object name template for uploads to this tier; supports the {name} and \n" +
			"{timestamp} placeholders"},
	"force-connection": cliFlag{name: "force", shortHand: "F",
		desc: "Allow overwrite of existing connections"},
}

// addFlag adds a flag to cobra.Command c, based on the type of targetVar (which must be a pointer).
// The name of the flag is looked up in map, cliFlags.
// When running in twelveFactorMode, the targetVar is populated using the value of the environment variable
// for the supplied name, or if not set then the supplied default value is used.
// The flag is marked as required in Cobra based on the value of required.
func (f *cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue string, required bool, desc2 string) {
	sw := f.getCliFlag(name, defaultValue) // get the cliFlag details, with defaults taken from env or the supplied defaultValue
	desc := sw.desc + desc2                // create the full flag description for use below
	// Apply the flag.
	switch p := targetVar.(type) {
	case *string:
		if twelveFactorMode {
			*p = sw.val
		} else {
			c.Flags().StringVarP(p, sw.name, sw.shortHand, sw.val, desc)
			// Signal that the flag was set so defaults take effect.
			if sw.val != "" { // if there is a value via the default...
				mustSetFlag(c.Flags(), sw.name, sw.val)
			}
		}
	case *bool:
		if twelveFactorMode {
			// Convert any string value into True.
			if sw.val != "" {
				*p = true
			} else {
				*p = false
			}
		} else {
			defaultBool := strings.ToLower(sw.val) == "true"
			c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultBool, desc)
		}
	case *int:
		defaultInt := 0
		if sw.val != "" {
			var err error
			defaultInt, err = strconv.Atoi(sw.val)
			if err != nil {
				fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
				os.Exit(1)
			}
		}
		if twelveFactorMode {
			*p = defaultInt
		} else {
			c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultInt, desc)
		}
	default:
		panic("Error: unhandled CLI flag target value type")
	}
	// Optionally mark the flag as mandatory.
	if required && !twelveFactorMode { // if the flag is required...
		_ = c.MarkFlagRequired(sw.name)
	}
}

// getCliFlag fetches the value of name from the environment when running in twelveFactorMode.
// If a value cannot be found then use the supplied defaultValue in its place.
func (f *cliFlags) getCliFlag(name string, defaultValue string) cliFlag {
	s, ok := switches[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	if twelveFactorMode { // if we should read env vars...
		if err := helper.ReadValueFromEnv(flagNameToEnvVar(name), &s.val); err != nil { // if there's no value for the env var read into the switch val...
			// Apply the default.
			s.val = defaultValue
		}
	} else { // else apply the default...
		s.val = defaultValue
	}
	return s
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return constants.EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func mustSetFlag(f *pflag.FlagSet, name string, val string) {
	if err := f.Set(name, val); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
