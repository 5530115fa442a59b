package matcher

import (
	"log/slog"
	"os"
)

// ReloadStatus classifies the outcome of a reload check.
type ReloadStatus int

const (
	// ReloadSkipped means no reload was needed: no index, no source
	// path, the file was unreadable, or the mtime was unchanged.
	ReloadSkipped ReloadStatus = iota
	// ReloadApplied means the corpus changed and was re-fitted.
	ReloadApplied
	// ReloadFailed means the corpus changed but re-fitting failed;
	// the previous index keeps serving.
	ReloadFailed
)

// String returns a human-readable status name.
func (s ReloadStatus) String() string {
	switch s {
	case ReloadSkipped:
		return "SKIPPED"
	case ReloadApplied:
		return "APPLIED"
	case ReloadFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ReloadOutcome is the structured result of MaybeReload. Failures are
// reported here rather than propagated so read paths stay available on
// a stale-but-consistent index.
type ReloadOutcome struct {
	Status ReloadStatus
	Err    error
}

// MaybeReload re-fits the corpus when its modification timestamp
// differs from the one recorded at fit time. Concurrent callers share
// a single check. Never returns an error: reload failures surface only
// in the outcome and the previous index continues serving.
func (s *Service) MaybeReload() ReloadOutcome {
	out, _, _ := s.reloads.Do("reload", func() (any, error) {
		return s.checkAndReload(), nil
	})
	return out.(ReloadOutcome)
}

func (s *Service) checkAndReload() ReloadOutcome {
	idx := s.idx.Load()
	if idx == nil || idx.SourcePath == "" {
		return ReloadOutcome{Status: ReloadSkipped}
	}

	info, err := os.Stat(idx.SourcePath)
	if err != nil {
		// Unreadable source: keep serving the current index.
		return ReloadOutcome{Status: ReloadSkipped}
	}
	if info.ModTime().Equal(idx.SourceModTime) {
		return ReloadOutcome{Status: ReloadSkipped}
	}

	if err := s.Fit(idx.SourcePath); err != nil {
		s.log.Warn("corpus reload failed, serving previous index",
			slog.String("path", idx.SourcePath),
			slog.String("error", err.Error()))
		return ReloadOutcome{Status: ReloadFailed, Err: err}
	}
	s.log.Info("corpus reloaded", slog.String("path", idx.SourcePath))
	return ReloadOutcome{Status: ReloadApplied}
}
