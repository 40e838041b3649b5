package state

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestApplyStateUpdate_EmptyPatchIsNoOp(t *testing.T) {
	s := NewSessionState()
	s.AddNPC("Ameiko", "friendly", "Innkeeper")
	s.AddEvent("Adventure began")
	before := *s
	beforeNPCs := append([]NPCInfo(nil), s.ActiveNPCs...)

	s.ApplyStateUpdate(nil)
	s.ApplyStateUpdate(&StatePatch{})

	if s.Location != before.Location || s.InCombat != before.InCombat ||
		s.TimeOfDay != before.TimeOfDay || s.DaysElapsed != before.DaysElapsed {
		t.Errorf("scalar fields changed by empty patch")
	}
	if !reflect.DeepEqual(s.ActiveNPCs, beforeNPCs) {
		t.Errorf("NPC list changed by empty patch: %+v", s.ActiveNPCs)
	}
}

func TestApplyStateUpdate_Fields(t *testing.T) {
	tests := []struct {
		name  string
		patch *StatePatch
		check func(t *testing.T, s *SessionState)
	}{
		{
			name:  "location change",
			patch: &StatePatch{LocationChange: strPtr("Sandpoint Cathedral")},
			check: func(t *testing.T, s *SessionState) {
				if s.Location != "Sandpoint Cathedral" {
					t.Errorf("expected location updated, got %q", s.Location)
				}
			},
		},
		{
			name:  "combat started",
			patch: &StatePatch{CombatStarted: boolPtr(true)},
			check: func(t *testing.T, s *SessionState) {
				if !s.InCombat {
					t.Error("expected in_combat set")
				}
			},
		},
		{
			name:  "combat started false is ignored",
			patch: &StatePatch{CombatStarted: boolPtr(false)},
			check: func(t *testing.T, s *SessionState) {
				if s.InCombat {
					t.Error("expected in_combat untouched")
				}
			},
		},
		{
			name: "new npc with missing fields gets defaults",
			patch: &StatePatch{
				NewNPC: &NPCInfo{Note: "lurking in the shadows"},
			},
			check: func(t *testing.T, s *SessionState) {
				if len(s.ActiveNPCs) != 1 {
					t.Fatalf("expected 1 NPC, got %d", len(s.ActiveNPCs))
				}
				npc := s.ActiveNPCs[0]
				if npc.Name != "Unknown" || npc.Attitude != "neutral" {
					t.Errorf("expected defaults applied, got %+v", npc)
				}
			},
		},
		{
			name:  "time advance",
			patch: &StatePatch{TimeAdvance: strPtr("midnight")},
			check: func(t *testing.T, s *SessionState) {
				if s.TimeOfDay != "midnight" {
					t.Errorf("expected time of day updated, got %q", s.TimeOfDay)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionState()
			s.ApplyStateUpdate(tt.patch)
			tt.check(t, s)
		})
	}
}

func TestApplyStateUpdate_NPCScenario(t *testing.T) {
	s := NewSessionState()

	var first StatePatch
	if err := json.Unmarshal([]byte(`{"new_npc": {"name": "Ameiko", "attitude": "friendly", "note": "Innkeeper"}}`), &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.ApplyStateUpdate(&first)

	var second StatePatch
	if err := json.Unmarshal([]byte(`{"npc_attitude_change": {"ameiko": "suspicious"}}`), &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.ApplyStateUpdate(&second)

	if len(s.ActiveNPCs) != 1 {
		t.Fatalf("expected 1 NPC, got %d", len(s.ActiveNPCs))
	}
	if s.ActiveNPCs[0].Attitude != "suspicious" {
		t.Errorf("expected case-mismatched attitude change applied, got %+v", s.ActiveNPCs[0])
	}
}

func TestApplyStateUpdate_QuestFlow(t *testing.T) {
	s := NewSessionState()
	s.ApplyStateUpdate(&StatePatch{
		QuestUpdate: &QuestUpdate{
			New: &NewQuest{Title: "Save Sandpoint", Objective: "Stop the raids"},
		},
	})
	s.ApplyStateUpdate(&StatePatch{
		QuestUpdate: &QuestUpdate{Completed: "save sandpoint"},
	})

	if len(s.ActiveQuests) != 1 || s.ActiveQuests[0].Status != QuestStatusCompleted {
		t.Errorf("expected quest completed, got %+v", s.ActiveQuests)
	}

	// Completing a quest that doesn't exist changes nothing.
	s.ApplyStateUpdate(&StatePatch{
		QuestUpdate: &QuestUpdate{Completed: "imaginary quest"},
	})
	if len(s.ActiveQuests) != 1 {
		t.Errorf("expected silent miss, got %+v", s.ActiveQuests)
	}
}

func TestApplyStateUpdate_EventAppended(t *testing.T) {
	s := NewSessionState()
	s.ApplyStateUpdate(&StatePatch{NewEvent: strPtr("Goblins attacked")})
	if len(s.RecentEvents) != 1 || s.RecentEvents[0] != "Goblins attacked" {
		t.Errorf("expected event recorded, got %v", s.RecentEvents)
	}
}
