package orchestrator

import (
	"context"

	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/storage"
)

func (s *service) persistRunIfEnabled(ctx context.Context, summary model.RunSummary) {
	if s.store == nil {
		return
	}

	// The run may have been interrupted; history is still written.
	ctx = context.WithoutCancel(ctx)
	id, err := s.store.SaveRun(ctx, storage.SaveRunInput{
		Summary: summary,
		Version: s.versionInfo.Version,
	})
	if err != nil {
		s.logger.Warn("failed to save run history", "run_id", summary.RunID, "error", err)
		return
	}
	s.logger.Debug("run history saved", "run_id", summary.RunID, "row", id)
}
