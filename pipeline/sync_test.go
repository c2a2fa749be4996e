package pipeline

import (
	"bytes"
	"testing"
	"time"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

func newTestSync(t *testing.T) (*Sync, *objstore.MockClient, *objstore.MockClient) {
	log := logger.NewLogger("sync test", "error", true)
	remote := objstore.NewMockClient()
	local := objstore.NewMockClient()
	s, err := NewSync(&SyncConfig{
		Log:    log,
		Name:   "test sync",
		Remote: TierConfig{Client: remote, NameTemplate: "incoming/{name}"},
		Local:  TierConfig{Client: local, NameTemplate: "{timestamp}_{name}"},
	})
	if err != nil {
		t.Fatal("unexpected error creating sync: ", err)
	}
	return s, remote, local
}

func TestSyncResolveNamePerTier(t *testing.T) {
	s, _, _ := newTestSync(t)
	ts := time.Date(2020, 9, 14, 10, 30, 0, 0, time.UTC)
	if got := s.ResolveName(objstore.TierRemote, "vitals.csv", ts); got != "incoming/vitals.csv" {
		t.Fatal("unexpected remote object name: ", got)
	}
	if got := s.ResolveName(objstore.TierLocal, "vitals.csv", ts); got != "20200914T103000_vitals.csv" {
		t.Fatal("unexpected local object name: ", got)
	}
}

func TestSyncUploadDownloadRoundTrip(t *testing.T) {
	s, _, local := newTestSync(t)
	payload := []byte("source,rowid\nvitals.csv,1\n")
	if err := s.Upload(objstore.TierLocal, "staged.csv", payload, constants.ContentTypeCsv); err != nil {
		t.Fatal("unexpected error uploading: ", err)
	}
	if local.GetContentType("staged.csv") != constants.ContentTypeCsv {
		t.Fatal("expected the content type to be recorded on the object")
	}
	got, err := s.Download(objstore.TierLocal, "staged.csv")
	if err != nil {
		t.Fatal("unexpected error downloading: ", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("downloaded payload differs from the upload: ", string(got))
	}
	// The tiers never share storage.
	if _, err := s.Download(objstore.TierRemote, "staged.csv"); err == nil {
		t.Fatal("expected a miss downloading a local object from the remote tier")
	}
}

func TestSyncDownloadMissingObject(t *testing.T) {
	s, _, _ := newTestSync(t)
	_, err := s.Download(objstore.TierRemote, "never-uploaded.csv")
	if err == nil {
		t.Fatal("expected an error for a missing object")
	}
}
