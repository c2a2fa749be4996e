// Package registry maintains the append-only tabular log correlating uploaded
// artifact names with the patient identifiers they contain.
package registry

import (
	"bytes"
	"encoding/csv"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
)

// ErrRegistryCorrupted means the existing log could not be read or parsed.
// An append must not proceed after this - a partial append would silently drop rows.
var ErrRegistryCorrupted = errors.New("registry corrupted")

type Config struct {
	Log        logger.Logger
	Store      objstore.BasicClient `errorTxt:"registry store client" mandatory:"yes"`
	ObjectName string               // log object key; defaults to constants.RegistryObjectNameDefault.
	Locker     Locker               // append serialization; defaults to an in-process mutex.
}

// Registry is the identity mapping log held in one object storage tier.
// The store offers no partial-append primitive so every append rewrites the
// whole log; appends are serialized through the configured Locker.
type Registry struct {
	log        logger.Logger
	store      objstore.BasicClient
	objectName string
	locker     Locker
}

func NewRegistry(cfg *Config) (*Registry, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	objectName := cfg.ObjectName
	if objectName == "" {
		objectName = constants.RegistryObjectNameDefault
	}
	locker := cfg.Locker
	if locker == nil {
		locker = &MutexLocker{}
	}
	return &Registry{
		log:        cfg.Log,
		store:      cfg.Store,
		objectName: objectName,
		locker:     locker,
	}, nil
}

// AppendMappings records one registry row per identifier, each paired with the
// same objectName, preserving the identifiers' original order. If the log does
// not exist yet it is created with the fixed two-column header.
func (r *Registry) AppendMappings(objectName string, identifiers []string) error {
	if len(identifiers) == 0 { // nothing to record for this artifact.
		r.log.Debug("no identifiers to append for ", objectName)
		return nil
	}
	if err := r.locker.Lock(); err != nil {
		return errors.Wrap(err, "locking registry")
	}
	defer func() {
		if err := r.locker.Unlock(); err != nil {
			r.log.Error("error releasing registry lock: ", err)
		}
	}()
	rows, err := r.fetchRows()
	if err != nil {
		return err
	}
	for _, id := range identifiers { // append preserving original order...
		rows = append(rows, []string{objectName, id})
	}
	data, err := encodeRows(rows)
	if err != nil {
		return errors.Wrap(err, "encoding registry log")
	}
	err = r.store.Put(r.objectName, data, constants.ContentTypeCsv)
	if err != nil {
		return errors.Wrap(err, "uploading registry log")
	}
	r.log.Info("registry ", r.objectName, " now has ", len(rows)-1, " mappings")
	return nil
}

// fetchRows returns the current log content including the header row,
// or just the header when the log does not exist yet.
func (r *Registry) fetchRows() ([][]string, error) {
	header := []string{constants.RegistryHeaderFileName, constants.RegistryHeaderPersonalId}
	keys, err := r.store.List(r.objectName)
	if err != nil {
		return nil, errors.Wrap(err, "listing registry prefix")
	}
	if !containsKey(keys, r.objectName) { // if the log does not exist yet...
		r.log.Info("registry ", r.objectName, " does not exist; creating")
		return [][]string{header}, nil
	}
	data, err := r.store.Get(r.objectName)
	if err != nil {
		return nil, errors.Wrapf(ErrRegistryCorrupted, "fetching existing log: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrRegistryCorrupted, "parsing existing log: %v", err)
	}
	if len(rows) == 0 || len(rows[0]) != 2 ||
		rows[0][0] != header[0] || rows[0][1] != header[1] { // if the header is not the fixed two-column one...
		return nil, errors.Wrapf(ErrRegistryCorrupted, "unexpected header in existing log: %v", rows)
	}
	return rows, nil
}

func encodeRows(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
