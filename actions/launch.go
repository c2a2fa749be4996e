package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/pipeline"
)

// LaunchPipeline validates the supplied exchange metadata and launches a
// pipeline run in a goroutine. It stores the GUID of the new run in ri and
// returns it. An error is returned if validation or assembly fails; failures
// inside the running pipeline are reported via the stored RunStatus instead.
func LaunchPipeline(log logger.Logger, ri *SafeMapRunInfo, cfg *PipelineConfig, meta *pipeline.Exchange) (guid string, err error) {
	// Validate the exchange metadata.
	err = helper.ValidateStructIsPopulated(meta)
	if err != nil { // if there was an error in validation...
		return // guid, err
	}
	// Assemble before registering the run so a bad config is reported synchronously.
	o, closer, err := buildOrchestrator(log, cfg)
	if err != nil {
		return "", err
	}
	chanStatus := make(chan RunStatus, 1) // channel for us to receive status messages back from the run
	guid = xid.New().String()
	ri.Store(
		guid,
		RunInfo{ // save details about this run
			Exchange: *meta, // save value
			Status:   RunStatus{Status: StatusStarting, StartTime: time.Now()},
		})
	// Launch a goroutine to consume status messages from the run, saving them to our instance of RunInfo.
	go ri.ConsumeRunStatusChanges(guid, chanStatus)
	// Launch the run.
	log.Info("Launching pipeline run ", guid)
	go func() {
		defer closer()
		chanStatus <- RunStatus{Status: StatusRunning}
		result, runErr := o.Run(context.Background(), meta)
		if runErr == nil && result != nil && !result.OK() {
			runErr = failedArtifactsError(result)
		}
		if info, ok := ri.Load(guid); ok { // save the per-artifact outcome...
			info.Result = result
			ri.Store(guid, info)
		}
		if runErr != nil {
			chanStatus <- RunStatus{Status: StatusCompleteWithError, Error: runErr.Error()}
		} else {
			chanStatus <- RunStatus{Status: StatusComplete}
		}
		close(chanStatus)
	}()
	return guid, nil
}

func failedArtifactsError(result *pipeline.RunResult) error {
	names := make([]string, 0, len(result.Failed))
	for name := range result.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Errorf("failed artifacts: %v", strings.Join(names, ", "))
}
