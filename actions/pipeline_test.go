package actions

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestReadExchangeFileYaml(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "exchange.yaml")
	content := `fileNames:
  - vitals.csv
  - labs.csv
workspaceId: ws1
contentType: text/csv
mrn: mrn-42
`
	if err := ioutil.WriteFile(fileName, []byte(content), 0644); err != nil {
		t.Fatal("unexpected error writing exchange file: ", err)
	}
	meta, err := ReadExchangeFile(fileName)
	if err != nil {
		t.Fatal("unexpected error reading exchange file: ", err)
	}
	if len(meta.FileNames) != 2 || meta.FileNames[0] != "vitals.csv" {
		t.Fatal("unexpected file names: ", meta.FileNames)
	}
	if meta.WorkspaceId != "ws1" || meta.Mrn != "mrn-42" {
		t.Fatal("unexpected exchange metadata: ", meta)
	}
}

func TestReadExchangeFileJson(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "exchange.json")
	content := `{"fileNames":["vitals.csv"],"workspaceId":"ws1","contentType":"text/csv"}`
	if err := ioutil.WriteFile(fileName, []byte(content), 0644); err != nil {
		t.Fatal("unexpected error writing exchange file: ", err)
	}
	meta, err := ReadExchangeFile(fileName)
	if err != nil {
		t.Fatal("unexpected error reading exchange file: ", err)
	}
	if len(meta.FileNames) != 1 || meta.WorkspaceId != "ws1" {
		t.Fatal("unexpected exchange metadata: ", meta)
	}
}

func TestReadExchangeFileMissing(t *testing.T) {
	if _, err := ReadExchangeFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing exchange file")
	}
}
