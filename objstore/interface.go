package objstore

import (
	"errors"
	"io"
)

var ErrKeyNotFound = errors.New("key not found")

// Tier identifies one of the two independently configured object storage destinations.
type Tier int

const (
	TierRemote Tier = iota + 1 // the data lake next to the warehouse
	TierLocal                  // the on-prem cache
)

func (t Tier) String() string {
	switch t {
	case TierRemote:
		return "remote"
	case TierLocal:
		return "local"
	default:
		return "unknown"
	}
}

type BasicClient interface {
	Lister
	Getter
	Putter
	BufferPutter
	Deleter
}

type Client interface {
	BasicClient
	Mover
}

type Lister interface {
	List(key string) (keys []string, err error)
}

type Getter interface {
	// Get returns ErrKeyNotFound if the given key doesn't exist.
	Get(key string) (data []byte, err error)
}

type Putter interface {
	// Put stores data under key and records contentType as the object's MIME type.
	Put(key string, data []byte, contentType string) (err error)
}

// BufferPutter can be used to put a file since File implements Read and Seek.
type BufferPutter interface {
	BufferPut(key string, buf io.ReadSeeker, contentType string) (err error)
}

type Deleter interface {
	Delete(key string) error
}

type Mover interface {
	// Move returns ErrKeyNotFound if the src key doesn't exist.
	Move(src, dst string) error
}
