package objstore

import (
	"testing"
	"time"
)

func TestResolveName(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	// Test 1 - name and timestamp placeholders are replaced.
	got := ResolveName("anonymised/{name}-{timestamp}.csv", "f1.csv", ts)
	expected := "anonymised/f1.csv-20240102T030405.csv"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
	// Test 2 - a template without placeholders is returned verbatim.
	got = ResolveName("static-name.csv", "f1.csv", ts)
	if got != "static-name.csv" {
		t.Fatalf("expected template to pass through, got %q", got)
	}
	// Test 3 - an empty template keeps the original name.
	got = ResolveName("", "f1.csv", ts)
	if got != "f1.csv" {
		t.Fatalf("expected original name, got %q", got)
	}
	// Test 4 - a zero timestamp leaves the {timestamp} token alone.
	got = ResolveName("{name}-{timestamp}", "f1.csv", time.Time{})
	if got != "f1.csv-{timestamp}" {
		t.Fatalf("expected {timestamp} to be preserved for zero time, got %q", got)
	}
}

func TestParseDSN(t *testing.T) {
	// Test 1 - full form with scheme and prefix.
	cfg, err := ParseDSN("s3://my-bucket/some/prefix", "eu-west-2")
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if cfg.Bucket != "my-bucket" || cfg.Prefix != "some/prefix" || cfg.Region != "eu-west-2" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// Test 2 - missing region is an error.
	_, err = ParseDSN("s3://my-bucket/some/prefix", "")
	if err == nil {
		t.Fatal("expected an error for missing region")
	}
	// Test 3 - wrong scheme is an error.
	_, err = ParseDSN("http://my-bucket/x", "eu-west-2")
	if err == nil {
		t.Fatal("expected an error for wrong scheme")
	}
}
