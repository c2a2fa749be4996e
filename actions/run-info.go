package actions

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/medbridge/edgepipe/pipeline"
)

type Status uint32

const (
	StatusMissing        = 0
	StatusStarting Status = iota + 1
	StatusRunning
	StatusComplete
	StatusCompleteWithError
)

func (s Status) MarshalJSON() ([]byte, error) {
	var retval string
	switch s {
	case StatusMissing:
		retval = ""
	case StatusStarting:
		retval = "starting"
	case StatusRunning:
		retval = "running"
	case StatusComplete:
		retval = "complete"
	case StatusCompleteWithError:
		retval = "complete with error"
	default:
		err := fmt.Errorf("unhandled Status value %v in custom MarshalJSON() conversion", s)
		return nil, err
	}
	return json.Marshal(retval)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	switch str {
	case "":
		*s = StatusMissing
	case "starting":
		*s = StatusStarting
	case "running":
		*s = StatusRunning
	case "complete":
		*s = StatusComplete
	case "complete with error":
		*s = StatusCompleteWithError
	default:
		return fmt.Errorf("unhandled Status value %q in custom UnmarshalJSON() conversion", str)
	}
	return nil
}

type RunStatus struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    Status    `json:"runStatus"`
	Error     string    `json:"error"`
}

func (r *RunStatus) RunIsFinished() bool {
	if r.Status == StatusStarting || r.Status == StatusRunning { // if the run is still going...
		return false // we're not finished!
	} else { // else the run is NOT going...
		return true
	}
}

type RunInfo struct {
	Exchange pipeline.Exchange
	Status   RunStatus `json:"runStatus"`
	Result   *pipeline.RunResult
}

// SafeMapRunInfo wraps a map[string]RunInfo with locking, via Load() and Store() methods.
type SafeMapRunInfo struct {
	sync.RWMutex
	Internal map[string]RunInfo
}

func NewSafeMapRunInfo() *SafeMapRunInfo {
	ri := SafeMapRunInfo{}
	ri.Internal = make(map[string]RunInfo)
	return &ri
}

func (r *SafeMapRunInfo) Load(key string) (ri RunInfo, ok bool) {
	r.RLock()
	ri, ok = r.Internal[key]
	r.RUnlock()
	return
}

func (r *SafeMapRunInfo) Store(key string, value RunInfo) {
	r.Lock()
	r.Internal[key] = value
	r.Unlock()
}

func (r *SafeMapRunInfo) Delete(key string) {
	r.Lock()
	delete(r.Internal, key)
	r.Unlock()
}

// ConsumeRunStatusChanges loops until chanStatus is closed
// and updates r.Internal[runGuid] with any statuses received.
func (r *SafeMapRunInfo) ConsumeRunStatusChanges(runGuid string, chanStatus chan RunStatus) {
	for status := range chanStatus {
		ri, _ := r.Load(runGuid)
		switch status.Status {
		case StatusRunning:
			ri.Status.Status = status.Status
			ri.Status.StartTime = time.Now()
		case StatusComplete:
			ri.Status.Status = status.Status
			ri.Status.EndTime = time.Now()
		case StatusCompleteWithError:
			ri.Status.Status = status.Status
			ri.Status.EndTime = time.Now()
			ri.Status.Error = status.Error
		}
		r.Store(runGuid, ri)
	}
}
