package pipeline

import (
	"time"
)

// Exchange is the per-invocation metadata handed over by the invoking harness.
// It is pure input data, not a capability.
type Exchange struct {
	FileNames     []string    `json:"fileNames" yaml:"fileNames" errorTxt:"artifact file names" mandatory:"yes"`
	CreationTimes []time.Time `json:"creationTimes" yaml:"creationTimes"` // aligned with FileNames; optional.
	WorkspaceId   string      `json:"workspaceId" yaml:"workspaceId" errorTxt:"workspace id" mandatory:"yes"`
	ContentType   string      `json:"contentType" yaml:"contentType"`
	// Optional per-exchange attachments.
	Mrn              string `json:"mrn,omitempty" yaml:"mrn,omitempty"`
	MetadataFileName string `json:"metadataFileName,omitempty" yaml:"metadataFileName,omitempty"`
	MetadataContent  []byte `json:"metadataContent,omitempty" yaml:"metadataContent,omitempty"`
}

// CreationTime returns the creation timestamp aligned with FileNames[i],
// or the zero time when the harness did not supply one.
func (e *Exchange) CreationTime(i int) time.Time {
	if i < 0 || i >= len(e.CreationTimes) {
		return time.Time{}
	}
	return e.CreationTimes[i]
}
