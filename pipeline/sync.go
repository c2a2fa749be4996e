package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

// TierConfig binds a client to its configured object name template.
type TierConfig struct {
	Client       objstore.BasicClient `errorTxt:"object store client" mandatory:"yes"`
	NameTemplate string
}

type SyncConfig struct {
	Log    logger.Logger
	Name   string
	Remote TierConfig // the data lake next to the warehouse.
	Local  TierConfig // the on-prem cache.
}

// Sync uploads byte payloads to the two object storage tiers under
// template-resolved names. The tiers never share storage; each is addressed
// through its own client and template.
type Sync struct {
	log    logger.Logger
	name   string
	remote TierConfig
	local  TierConfig
}

func NewSync(cfg *SyncConfig) (*Sync, error) {
	if cfg.Remote.Client == nil || cfg.Local.Client == nil {
		return nil, errors.New("both remote and local tier clients are required")
	}
	return &Sync{log: cfg.Log, name: cfg.Name, remote: cfg.Remote, local: cfg.Local}, nil
}

func (s *Sync) tier(t objstore.Tier) TierConfig {
	if t == objstore.TierLocal {
		return s.local
	}
	return s.remote
}

// ResolveName substitutes the tier's template placeholders for the given
// artifact name and timestamp.
func (s *Sync) ResolveName(t objstore.Tier, name string, ts time.Time) string {
	return objstore.ResolveName(s.tier(t).NameTemplate, name, ts)
}

// Upload stores payload under objectName in the given tier, recording
// contentType on the object. No retry is built in; the caller decides whether
// a failure is fatal.
func (s *Sync) Upload(t objstore.Tier, objectName string, payload []byte, contentType string) error {
	err := s.tier(t).Client.Put(objectName, payload, contentType)
	if err != nil {
		return errors.Wrapf(ErrUploadFailed, "uploading %q to %v tier: %v", objectName, t, err)
	}
	s.log.Info(s.name, " uploaded ", objectName, " to ", t, " tier")
	return nil
}

// Download re-reads an already staged object from the given tier.
func (s *Sync) Download(t objstore.Tier, objectName string) ([]byte, error) {
	data, err := s.tier(t).Client.Get(objectName)
	if err != nil {
		return nil, errors.Wrapf(err, "downloading %q from %v tier", objectName, t)
	}
	return data, nil
}
