package file

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/logger"
)

// ScratchDir is the local working directory where the invoking harness stages
// artifacts before the pipeline runs. Reads must happen before removal;
// RemoveFile is called only once all consumers of a file are done.
type ScratchDir struct {
	Log logger.Logger
	Dir string `errorTxt:"scratch directory" mandatory:"yes"`
}

// LoadFile returns the bytes of the named staged file.
func (s *ScratchDir) LoadFile(name string) ([]byte, error) {
	data, err := ioutil.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, errors.Wrapf(ErrExtractUnreadable, "loading scratch file %q: %v", name, err)
	}
	return data, nil
}

// ReadExtract decodes the named staged file into an Extract.
func (s *ScratchDir) ReadExtract(name string) (*Extract, error) {
	data, err := s.LoadFile(name)
	if err != nil {
		return nil, err
	}
	return ReadExtractCsv(s.Log, bytes.NewReader(data))
}

// RemoveFile deletes a staged file. A missing file is not an error since a
// prior cleanup for the same artifact may have already removed it.
func (s *ScratchDir) RemoveFile(name string) error {
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing scratch file %q", name)
	}
	if os.IsNotExist(err) {
		s.Log.Warn("scratch file ", name, " was already removed")
	}
	return nil
}
