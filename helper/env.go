package helper

import (
	"fmt"
	"os"
	"strings"

	"github.com/medbridge/edgepipe/constants"
)

// GetEnvVar fetches OS environment variable.
// If the variable is not set it returns empty string.
// It also returns an error if there is a missing value AND mandatory == true.
func GetEnvVar(k string, mandatory bool) (string, error) {
	if value := os.Getenv(k); value != "" {
		return value, nil
	} else {
		if mandatory {
			return "", fmt.Errorf("environment variable %v is not set", k)
		} else {
			return "", nil
		}
	}
}

// ReadValueFromEnv will read the env var called name and populate the supplied val.
// If the env var is not set then return an error.
func ReadValueFromEnv(name string, val *string) error {
	v := os.Getenv(name)
	if v != "" { // if the environment variable was set...
		*val = v // update the callers value
		return nil
	} else { // else there was no environment variable set...
		return fmt.Errorf("value for environment variable %v not found", name)
	}
}

// ReadValueFromEnvWithDefault will read the value of name from the environment into v.
// If it's not set then it will apply the supplied defaultValue and return v.
func ReadValueFromEnvWithDefault(name string, defaultValue string) (v string) {
	_ = ReadValueFromEnv(name, &v)
	if v == "" && defaultValue != "" { // if the environment variable is not set and we have been given a default value...
		v = defaultValue
	}
	return
}

// GetDsnEnvVarName converts connectionName into the environment variable holding its DSN
// using EnvVarPrefix and the name converted to upper with dashes converted to underscores.
func GetDsnEnvVarName(connectionName string) string {
	n := strings.ReplaceAll(strings.TrimSpace(strings.ToUpper(connectionName)), "-", "_")
	return fmt.Sprintf("%v_%v_DSN", constants.EnvVarPrefix, n)
}

// GetStoreEnvVarName converts connectionName and key into the environment variable
// holding object store settings, e.g. EP_LOCAL_S3_ENDPOINT.
func GetStoreEnvVarName(connectionName string, key string) string {
	n := strings.ReplaceAll(strings.TrimSpace(strings.ToUpper(connectionName)), "-", "_")
	return fmt.Sprintf("%v_%v_S3_%v", constants.EnvVarPrefix, n, strings.ToUpper(key))
}
