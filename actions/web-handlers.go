package actions

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/pipeline"
)

type WebServerResponse uint32

const (
	Okay WebServerResponse = iota + 1
	Error
)

func (w WebServerResponse) MarshalJSON() ([]byte, error) {
	var retval string
	switch w {
	case Okay:
		retval = "ok"
	case Error:
		retval = "error"
	default:
		err := fmt.Errorf("unhandled WebServerResponse value in MarshalJSON() conversion")
		return nil, err
	}
	return json.Marshal(retval)
}

func (w *WebServerResponse) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "ok":
		*w = Okay
	case "error":
		*w = Error
	default:
		return fmt.Errorf("unhandled WebServerResponse value %q in custom UnmarshalJSON() conversion", s)
	}
	return nil
}

type ResponseSimple struct {
	ServerStatus WebServerResponse `json:"status"`
}

type ResponseRunList struct {
	Status  WebServerResponse `json:"status"`
	RunList []RunListItem     `json:"runs"`
}

type RunListItem struct {
	RunId        string `json:"runId"`
	NumArtifacts int    `json:"numArtifacts"`
	RunStatus    Status `json:"runStatus"`
}

type ResponseRunStatus struct {
	Status    WebServerResponse `json:"status"`
	Message   string            `json:"message"`
	RunStatus RunStatus         `json:"runStatus"`
}

type ResponseRunResult struct {
	Status    WebServerResponse `json:"status"`
	Message   string            `json:"message"`
	Processed []string          `json:"processed"`
	Failed    map[string]string `json:"failed"`
}

type ResponseRunLaunch struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	RunId   string            `json:"runId"`
}

func GetHandlerHealth(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerStopServer(log logger.Logger, chanStop chan string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		chanStop <- "stop"
		log.Info("Stop signal sent")
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerPipelineLaunch(log logger.Logger, allRunInfo *SafeMapRunInfo, cfg *PipelineConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// Ingest the exchange metadata from the request body JSON.
		b, _ := ioutil.ReadAll(r.Body)
		// Unmarshal the supplied JSON.
		meta := pipeline.Exchange{}
		err := json.Unmarshal(b, &meta)
		if err != nil {
			logAndRespond(log, err, w,
				ResponseRunLaunch{Status: Error, Message: fmt.Sprintf("error unmarshalling JSON: %v", err)})
			return
		}
		// Launch.
		guid, err := LaunchPipeline(log, allRunInfo, cfg, &meta)
		if err != nil {
			logAndRespond(log, err, w,
				ResponseRunLaunch{Status: Error, Message: fmt.Sprintf("invalid exchange metadata supplied: %v", err)})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseRunLaunch{Status: Okay, Message: "pipeline launched", RunId: guid})
	}
}

func GetHandlerRunList(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get a list of all run IDs.
		runs := make([]RunListItem, 0, len(allRunInfo.Internal))
		allRunInfo.RLock()
		for runId, v := range allRunInfo.Internal { // for each registered run key...
			runs = append(runs, RunListItem{
				RunId:        runId,
				NumArtifacts: len(v.Exchange.FileNames),
				RunStatus:    v.Status.Status,
			})
		}
		allRunInfo.RUnlock()
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseRunList{Status: Okay, RunList: runs})
	}
}

func GetHandlerRunStatus(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["runId"]
		// Get status for the given runId.
		ri, ok := allRunInfo.Load(id)
		if ok { // if the run exists...
			w.WriteHeader(http.StatusOK)
			respond(log, w, ResponseRunStatus{Status: Okay, Message: "", RunStatus: ri.Status})
		} else { // else the run doesn't exist...
			w.WriteHeader(http.StatusBadRequest)
			log.Info("HTTP request status of run ", id, " that doesn't exist.")
			respond(log, w, ResponseRunStatus{Status: Error, Message: fmt.Sprintf("run %v does not exist", id)})
		}
	}
}

func GetHandlerRunResult(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["runId"]
		// Get the per-artifact outcome for the given runId.
		ri, ok := allRunInfo.Load(id)
		if !ok { // if the run doesn't exist...
			w.WriteHeader(http.StatusBadRequest)
			log.Info("HTTP request for result of run ", id, " that doesn't exist.")
			respond(log, w, ResponseRunResult{Status: Error, Message: fmt.Sprintf("run %v does not exist", id)})
			return
		}
		if ri.Result == nil { // if the run has not finished yet...
			w.WriteHeader(http.StatusOK)
			respond(log, w, ResponseRunResult{Status: Okay, Message: "run has no result yet"})
			return
		}
		failed := make(map[string]string, len(ri.Result.Failed))
		for name, err := range ri.Result.Failed {
			failed[name] = err.Error()
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseRunResult{Status: Okay, Processed: ri.Result.Processed, Failed: failed})
	}
}

// logAndRespond will log the error, write a http.StatusBadRequest and r to w.
func logAndRespond(log logger.Logger, err error, w http.ResponseWriter, r ResponseRunLaunch) {
	log.Error(err)
	w.WriteHeader(http.StatusBadRequest)
	respond(log, w, r)
}

// respond will marshal i to a string and write it to w.
func respond(log logger.Logger, w http.ResponseWriter, i interface{}) {
	j, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprint(w, string(j))
	if err != nil {
		log.Panic(err)
	}
}
