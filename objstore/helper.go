package objstore

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseDSN expects bucketPrefix to be of the form [s3://]<bucket>/<prefix>
// It returns a StoreConfig populated with the components of bucketPrefix and the supplied region.
// If there is a parsing error it returns an error.
func ParseDSN(bucketPrefix string, region string) (retval StoreConfig, err error) {
	expectedScheme := "s3"
	s3url, err := url.Parse(bucketPrefix)
	if err != nil {
		return retval, fmt.Errorf("error parsing S3 URL: %v", err)
	}
	if s3url.Scheme != "" && s3url.Scheme != expectedScheme {
		return retval, fmt.Errorf("expected S3 URL scheme %q but got %q", expectedScheme, s3url.Scheme)
	}
	if region == "" {
		return retval, fmt.Errorf("value expected for bucket region")
	}
	retval.Bucket = s3url.Host
	if retval.Bucket == "" {
		return retval, fmt.Errorf("DSN failed to parse bucket name")
	}
	retval.Prefix = strings.Trim(s3url.Path, "/")
	retval.Region = region
	return
}

// StoreConfigToMap flattens a StoreConfig for storage in a connections file.
func StoreConfigToMap(m map[string]string, c StoreConfig) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m["endpoint"] = c.Endpoint
	m["region"] = c.Region
	m["bucket"] = c.Bucket
	m["prefix"] = c.Prefix
	m["accessKeyId"] = c.AccessKeyId
	m["secretAccessKey"] = c.SecretAccessKey
	m["nameTemplate"] = c.NameTemplate
	return m
}

// StoreConfigFromMap is the inverse of StoreConfigToMap.
func StoreConfigFromMap(m map[string]string) *StoreConfig {
	return &StoreConfig{
		Endpoint:        m["endpoint"],
		Region:          m["region"],
		Bucket:          m["bucket"],
		Prefix:          m["prefix"],
		AccessKeyId:     m["accessKeyId"],
		SecretAccessKey: m["secretAccessKey"],
		NameTemplate:    m["nameTemplate"],
	}
}

// Parse validates that the settings identify a usable bucket.
func (c StoreConfig) Parse() error {
	if c.Bucket == "" {
		return fmt.Errorf("value expected for bucket name")
	}
	if c.Region == "" {
		return fmt.Errorf("value expected for bucket region")
	}
	return nil
}

func (c StoreConfig) GetScheme() (string, error) {
	return "s3", nil
}

func (c StoreConfig) GetMap(m map[string]string) map[string]string {
	return StoreConfigToMap(m, c)
}
