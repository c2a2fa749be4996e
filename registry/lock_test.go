package registry

import (
	"testing"
	"time"

	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

func TestObjectLocker(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	store := objstore.NewMockClient()
	l := &ObjectLocker{Log: log, Store: store, LockName: "mapping.lock"}
	// Test 1 - lock claims the marker object.
	if err := l.Lock(); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if _, err := store.Get("mapping.lock"); err != nil {
		t.Fatal("expected lock object to exist: ", err)
	}
	// Test 2 - unlock removes the marker.
	if err := l.Unlock(); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if _, err := store.Get("mapping.lock"); err != objstore.ErrKeyNotFound {
		t.Fatal("expected lock object to be removed")
	}
	// Test 3 - a held lock times out for a second claimant.
	if err := l.Lock(); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	l2 := &ObjectLocker{Log: log, Store: store, LockName: "mapping.lock", RetryMax: 2, RetryWait: time.Millisecond}
	if err := l2.Lock(); err == nil {
		t.Fatal("expected the second claimant to time out")
	}
}
