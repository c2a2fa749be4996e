package registry

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

// Locker serializes registry appends. The full-read/full-rewrite append
// protocol loses updates under concurrent writers, so every append runs
// inside Lock/Unlock.
type Locker interface {
	Lock() error
	Unlock() error
}

// MutexLocker serializes appends within one process.
type MutexLocker struct {
	mu sync.Mutex
}

func (l *MutexLocker) Lock() error {
	l.mu.Lock()
	return nil
}

func (l *MutexLocker) Unlock() error {
	l.mu.Unlock()
	return nil
}

// ObjectLocker is an advisory lock held as an object in the same store as the
// registry log, for serializing appends across processes. Acquisition polls
// until the lock object is absent, then claims it; this is advisory only -
// the store offers no compare-and-swap primitive, so deployments needing hard
// guarantees should front appends with a single writer.
type ObjectLocker struct {
	Log        logger.Logger
	Store      objstore.BasicClient
	LockName   string        // object key used as the lock marker.
	RetryMax   int           // polls before giving up; 0 uses the default.
	RetryWait  time.Duration // wait between polls; 0 uses the default.
	holderInfo []byte
}

func (l *ObjectLocker) Lock() error {
	retryMax := l.RetryMax
	if retryMax == 0 {
		retryMax = constants.RegistryLockRetryMaxDefault
	}
	retryWait := l.RetryWait
	if retryWait == 0 {
		retryWait = constants.RegistryLockRetryWaitMs * time.Millisecond
	}
	for attempt := 0; attempt < retryMax; attempt++ { // poll until the lock is free...
		keys, err := l.Store.List(l.LockName)
		if err != nil {
			return errors.Wrap(err, "listing registry lock")
		}
		if len(keys) == 0 { // if nobody holds the lock...
			l.holderInfo = []byte(time.Now().UTC().Format(time.RFC3339))
			return errors.Wrap(
				l.Store.Put(l.LockName, l.holderInfo, constants.ContentTypeOctetStream),
				"claiming registry lock")
		}
		l.Log.Debug("registry lock ", l.LockName, " is held; retrying")
		time.Sleep(retryWait)
	}
	return errors.Errorf("timed out waiting for registry lock %q", l.LockName)
}

func (l *ObjectLocker) Unlock() error {
	return errors.Wrap(l.Store.Delete(l.LockName), "releasing registry lock")
}
