package app

import "github.com/theimaginaryfoundation/mood-assistant/mood"

// AnalysisDoneMsg carries the result of one submission.
type AnalysisDoneMsg struct {
	Analysis mood.Analysis
	// OK is false when the submission was a no-op (blank text).
	OK  bool
	Err error
}

// HistoryLoadedMsg carries the full mood history, or the error reading it.
type HistoryLoadedMsg struct {
	Entries []mood.Entry
	Err     error
}

// HistoryClearedMsg is sent after the history store was reset.
type HistoryClearedMsg struct {
	Err error
}

// spinnerTickMsg advances the pending-analysis indicator.
type spinnerTickMsg struct{}
