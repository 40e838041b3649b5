package state

import "log/slog"

// PatchWorker applies a StatePatch to a SessionState. It mirrors the
// mutator surface of SessionState, checking each patch field for presence
// before use. Nothing here returns an error: an unusable field is skipped
// and the rest of the patch still applies, because losing one update is
// always safer than aborting the session.
//
// HP changes are not handled here; they belong to the party roster, which
// tracks live hit points outside the session summary.
type PatchWorker struct {
	ss     *SessionState
	patch  *StatePatch
	logger *slog.Logger
}

// NewPatchWorker creates a worker for applying patch changes.
// logger may be nil.
func NewPatchWorker(ss *SessionState, patch *StatePatch, logger *slog.Logger) *PatchWorker {
	return &PatchWorker{
		ss:     ss,
		patch:  patch,
		logger: logger,
	}
}

// Apply fans the patch out to the session mutators. A nil or empty patch
// is a no-op.
func (w *PatchWorker) Apply() {
	if w.ss == nil || w.patch.IsEmpty() {
		return
	}

	if w.patch.LocationChange != nil && *w.patch.LocationChange != "" {
		if w.logger != nil {
			w.logger.Debug("Location changed",
				"from", w.ss.Location,
				"to", *w.patch.LocationChange)
		}
		w.ss.Location = *w.patch.LocationChange
	}

	if w.patch.CombatStarted != nil && *w.patch.CombatStarted {
		w.ss.InCombat = true
	}

	if w.patch.CombatEnded != nil && *w.patch.CombatEnded {
		w.ss.InCombat = false
	}

	if w.patch.NewNPC != nil {
		npc := *w.patch.NewNPC
		if npc.Name == "" {
			npc.Name = "Unknown"
		}
		if npc.Attitude == "" {
			npc.Attitude = "neutral"
		}
		w.ss.AddNPC(npc.Name, npc.Attitude, npc.Note)
	}

	for name, attitude := range w.patch.NPCAttitudeChange {
		w.ss.UpdateNPCAttitude(name, attitude)
	}

	if w.patch.QuestUpdate != nil {
		if w.patch.QuestUpdate.New != nil {
			title := w.patch.QuestUpdate.New.Title
			if title == "" {
				title = "Quest"
			}
			w.ss.AddQuest(title, w.patch.QuestUpdate.New.Objective)
		}
		// Completion by unknown title is a silent miss; CompleteQuest
		// no-ops when the title doesn't match.
		if w.patch.QuestUpdate.Completed != "" {
			w.ss.CompleteQuest(w.patch.QuestUpdate.Completed)
		}
	}

	if w.patch.NewEvent != nil && *w.patch.NewEvent != "" {
		w.ss.AddEvent(*w.patch.NewEvent)
	}

	if w.patch.TimeAdvance != nil && *w.patch.TimeAdvance != "" {
		w.ss.TimeOfDay = *w.patch.TimeAdvance
	}
}
