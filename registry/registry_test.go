package registry

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

func newTestRegistry(t *testing.T, store objstore.BasicClient) *Registry {
	log := logger.NewLogger("edgepipe", "info", true)
	r, err := NewRegistry(&Config{Log: log, Store: store})
	if err != nil {
		t.Fatal("unexpected error creating registry: ", err)
	}
	return r
}

func TestAppendMappingsCreatesLog(t *testing.T) {
	store := objstore.NewMockClient()
	r := newTestRegistry(t, store)
	// Registry object absent: the first append creates header + 2 rows.
	err := r.AppendMappings("obj1.csv", []string{"p1", "p2"})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	data, err := store.Get(constants.RegistryObjectNameDefault)
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	expected := "filename,personal_id\nobj1.csv,p1\nobj1.csv,p2\n"
	if string(data) != expected {
		t.Fatalf("unexpected log content:\n%q\nexpected:\n%q", data, expected)
	}
	if ct := store.GetContentType(constants.RegistryObjectNameDefault); ct != constants.ContentTypeCsv {
		t.Fatal("unexpected content type: ", ct)
	}
}

func TestAppendMappingsAppendsToExistingLog(t *testing.T) {
	store := objstore.NewMockClient()
	r := newTestRegistry(t, store)
	if err := r.AppendMappings("obj1.csv", []string{"p1", "p2"}); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	// A subsequent call yields a 4-row body with the new rows appended after the first two.
	if err := r.AppendMappings("obj2.csv", []string{"p3"}); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	data, _ := store.Get(constants.RegistryObjectNameDefault)
	expected := "filename,personal_id\nobj1.csv,p1\nobj1.csv,p2\nobj2.csv,p3\n"
	if string(data) != expected {
		t.Fatalf("unexpected log content:\n%q\nexpected:\n%q", data, expected)
	}
}

func TestAppendIsAssociative(t *testing.T) {
	// Appending artifact A then artifact B yields A's entries followed by B's,
	// with no interleaving and no loss.
	store := objstore.NewMockClient()
	r := newTestRegistry(t, store)
	if err := r.AppendMappings("a.csv", []string{"p1"}); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if err := r.AppendMappings("b.csv", []string{"p2", "p3"}); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	data, _ := store.Get(constants.RegistryObjectNameDefault)
	expected := "filename,personal_id\na.csv,p1\nb.csv,p2\nb.csv,p3\n"
	if string(data) != expected {
		t.Fatalf("unexpected log content:\n%q\nexpected:\n%q", data, expected)
	}
}

func TestAppendMappingsNoIdentifiersIsNoop(t *testing.T) {
	store := objstore.NewMockClient()
	r := newTestRegistry(t, store)
	if err := r.AppendMappings("obj1.csv", nil); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if _, err := store.Get(constants.RegistryObjectNameDefault); errors.Cause(err) != objstore.ErrKeyNotFound {
		t.Fatal("expected no log object to be created")
	}
}

func TestAppendMappingsCorruptLog(t *testing.T) {
	store := objstore.NewMockClient()
	// Seed a log with an unexpected header.
	_ = store.Put(constants.RegistryObjectNameDefault, []byte("bogus,header,extra\n"), constants.ContentTypeCsv)
	r := newTestRegistry(t, store)
	err := r.AppendMappings("obj1.csv", []string{"p1"})
	if errors.Cause(err) != ErrRegistryCorrupted {
		t.Fatal("expected ErrRegistryCorrupted, got: ", err)
	}
	// The corrupt log must be left untouched - no silent partial append.
	data, _ := store.Get(constants.RegistryObjectNameDefault)
	if !strings.HasPrefix(string(data), "bogus") {
		t.Fatal("corrupt log was modified: ", string(data))
	}
}
