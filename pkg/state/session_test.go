package state

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSessionState_AddEvent(t *testing.T) {
	s := NewSessionState()
	for i := 1; i <= 8; i++ {
		s.AddEvent(fmt.Sprintf("event %d", i))
	}

	if len(s.RecentEvents) != MaxRecentEvents {
		t.Fatalf("expected %d events, got %d", MaxRecentEvents, len(s.RecentEvents))
	}
	expected := []string{"event 4", "event 5", "event 6", "event 7", "event 8"}
	if !reflect.DeepEqual(s.RecentEvents, expected) {
		t.Errorf("expected most recent events in order, got %v", s.RecentEvents)
	}
}

func TestSessionState_AddNPC(t *testing.T) {
	t.Run("repeated name does not grow list", func(t *testing.T) {
		s := NewSessionState()
		s.AddNPC("Ameiko", "friendly", "Innkeeper")
		s.AddNPC("AMEIKO", "suspicious", "Hiding something")

		if len(s.ActiveNPCs) != 1 {
			t.Fatalf("expected 1 NPC, got %d", len(s.ActiveNPCs))
		}
		npc := s.ActiveNPCs[0]
		if npc.Attitude != "suspicious" || npc.Note != "Hiding something" {
			t.Errorf("expected last call's values, got %+v", npc)
		}
		if npc.Name != "Ameiko" {
			t.Errorf("expected original name casing preserved, got %q", npc.Name)
		}
	})

	t.Run("evicts oldest over capacity", func(t *testing.T) {
		s := NewSessionState()
		for i := 1; i <= MaxActiveNPCs+2; i++ {
			s.AddNPC(fmt.Sprintf("npc%d", i), "neutral", "")
		}
		if len(s.ActiveNPCs) != MaxActiveNPCs {
			t.Fatalf("expected %d NPCs, got %d", MaxActiveNPCs, len(s.ActiveNPCs))
		}
		if s.ActiveNPCs[0].Name != "npc3" {
			t.Errorf("expected oldest NPCs evicted, got %+v", s.ActiveNPCs)
		}
	})
}

func TestSessionState_UpdateNPCAttitude(t *testing.T) {
	s := NewSessionState()
	s.AddNPC("Gibbs", "neutral", "First mate")

	s.UpdateNPCAttitude("gibbs", "hostile")
	if s.ActiveNPCs[0].Attitude != "hostile" {
		t.Errorf("expected case-insensitive match, got %+v", s.ActiveNPCs[0])
	}

	// Unknown name is a silent no-op.
	s.UpdateNPCAttitude("nobody", "friendly")
	if len(s.ActiveNPCs) != 1 {
		t.Errorf("expected no new NPC, got %d", len(s.ActiveNPCs))
	}
}

func TestSessionState_AddQuest_EvictsCompletedFirst(t *testing.T) {
	s := NewSessionState()
	s.AddQuest("First", "one")
	s.AddQuest("Second", "two")
	s.AddQuest("Third", "three")
	s.CompleteQuest("Second")

	s.AddQuest("Fourth", "four")

	if len(s.ActiveQuests) != MaxActiveQuests {
		t.Fatalf("expected %d quests, got %d", MaxActiveQuests, len(s.ActiveQuests))
	}
	titles := []string{s.ActiveQuests[0].Title, s.ActiveQuests[1].Title, s.ActiveQuests[2].Title}
	if !reflect.DeepEqual(titles, []string{"First", "Third", "Fourth"}) {
		t.Errorf("expected completed quest evicted first, got %v", titles)
	}

	// No completed quests left: oldest evicted regardless of status.
	s.AddQuest("Fifth", "five")
	if s.ActiveQuests[0].Title != "Third" {
		t.Errorf("expected FIFO fallback, got %+v", s.ActiveQuests)
	}
}

func TestSessionState_CompleteQuest_SilentMiss(t *testing.T) {
	s := NewSessionState()
	s.AddQuest("Rescue the merchant", "Find the caravan")

	s.CompleteQuest("no such quest")
	if s.ActiveQuests[0].Status != QuestStatusActive {
		t.Errorf("expected unknown title to be a no-op, got %+v", s.ActiveQuests[0])
	}

	s.CompleteQuest("RESCUE THE MERCHANT")
	if s.ActiveQuests[0].Status != QuestStatusCompleted {
		t.Errorf("expected case-insensitive completion, got %+v", s.ActiveQuests[0])
	}
}

func TestSessionState_AddSecret(t *testing.T) {
	s := NewSessionState()
	for i := 1; i <= MaxSecrets+2; i++ {
		s.AddSecret(fmt.Sprintf("secret %d", i))
	}
	if len(s.DMSecrets) != MaxSecrets {
		t.Fatalf("expected %d secrets, got %d", MaxSecrets, len(s.DMSecrets))
	}
	if s.DMSecrets[0] != "secret 3" {
		t.Errorf("expected strict FIFO eviction, got %v", s.DMSecrets)
	}
}

func TestSessionState_ToPrompt(t *testing.T) {
	t.Run("full state", func(t *testing.T) {
		s := NewSessionState()
		s.PartySummary = "Thorin (Fighter 23/31 HP), Elara (Cleric full)"
		s.CurrentObjective = "Investigate the glassworks"
		s.InCombat = true
		s.InitiativeOrder = []string{"Thorin", "Goblin", "Elara"}
		s.AddNPC("Ameiko", "friendly", "Innkeeper, knows local rumors")
		s.AddQuest("Save Sandpoint", "Stop the goblin raids")
		s.CompleteQuest("Save Sandpoint")
		s.AddEvent("Goblins attacked the square")
		s.AddSecret("Tsuto is behind the raid")

		expected := `=== SESSION STATE ===
PARTY: Thorin (Fighter 23/31 HP), Elara (Cleric full)
LOCATION: The Rusty Dragon Inn - Main hall, evening
TIME: evening, Day 1
COMBAT: Active. Initiative: Thorin > Goblin > Elara
OBJECTIVE: Investigate the glassworks
KEY NPCs:
  - Ameiko (friendly): Innkeeper, knows local rumors
QUESTS:
  - [X] Save Sandpoint: Stop the goblin raids
RECENT:
  - Goblins attacked the square
DM NOTES (hidden from players):
  - Tsuto is behind the raid`

		if got := s.ToPrompt(); got != expected {
			t.Errorf("prompt mismatch:\nexpected:\n%s\n\ngot:\n%s", expected, got)
		}
	})

	t.Run("empty sections omitted", func(t *testing.T) {
		s := NewSessionState()
		got := s.ToPrompt()

		for _, header := range []string{"PARTY:", "COMBAT:", "KEY NPCs:", "QUESTS:", "RECENT:", "DM NOTES"} {
			if strings.Contains(got, header) {
				t.Errorf("expected %q omitted from empty state, got:\n%s", header, got)
			}
		}
		for _, header := range []string{"LOCATION:", "TIME:", "OBJECTIVE:"} {
			if !strings.Contains(got, header) {
				t.Errorf("expected %q always present, got:\n%s", header, got)
			}
		}
	})

	t.Run("only last three events rendered", func(t *testing.T) {
		s := NewSessionState()
		for i := 1; i <= 5; i++ {
			s.AddEvent(fmt.Sprintf("event %d", i))
		}
		got := s.ToPrompt()
		if strings.Contains(got, "event 2") {
			t.Errorf("expected only last %d events in prompt, got:\n%s", PromptEventLimit, got)
		}
		if !strings.Contains(got, "event 3") || !strings.Contains(got, "event 5") {
			t.Errorf("expected recent events present, got:\n%s", got)
		}
	})

	t.Run("combat without initiative", func(t *testing.T) {
		s := NewSessionState()
		s.InCombat = true
		if !strings.Contains(s.ToPrompt(), "COMBAT: Active. Initiative: Not set") {
			t.Errorf("expected 'Not set' initiative, got:\n%s", s.ToPrompt())
		}
	})
}

func TestSessionState_ToPlayerPrompt(t *testing.T) {
	s := NewSessionState()
	s.AddNPC("Ameiko", "friendly", "Innkeeper")
	s.AddSecret("Tsuto is behind the raid")

	got := s.ToPlayerPrompt()
	if strings.Contains(got, "DM NOTES") || strings.Contains(got, "Tsuto is behind the raid") {
		t.Errorf("expected secrets omitted from player render, got:\n%s", got)
	}
	for _, header := range []string{"=== SESSION STATE ===", "LOCATION:", "KEY NPCs:"} {
		if !strings.Contains(got, header) {
			t.Errorf("expected %q present in player render, got:\n%s", header, got)
		}
	}

	// Backend render is unchanged.
	if !strings.Contains(s.ToPrompt(), "DM NOTES (hidden from players):") {
		t.Error("expected secrets still present in backend render")
	}
}

func TestSessionState_PlayerView(t *testing.T) {
	s := NewSessionState()
	s.AddSecret("The raid was a distraction")
	s.AddEvent("Goblins attacked the square")

	view := s.PlayerView()
	if view.DMSecrets != nil {
		t.Errorf("expected secrets stripped from view, got %v", view.DMSecrets)
	}
	if view.ID != s.ID || !reflect.DeepEqual(view.RecentEvents, s.RecentEvents) {
		t.Error("expected view to carry the remaining session fields")
	}
	if len(s.DMSecrets) != 1 {
		t.Errorf("expected original untouched, got %v", s.DMSecrets)
	}
}

func TestSessionState_JSONRoundTrip(t *testing.T) {
	s := NewSessionState()
	s.PartySummary = "Thorin (Fighter 23/31 HP)"
	s.CurrentObjective = "Find the smuggler tunnels"
	s.InCombat = true
	s.InitiativeOrder = []string{"Thorin", "Goblin"}
	s.TimeOfDay = "night"
	s.DaysElapsed = 3
	s.ContentRating = "PG13"
	s.AddNPC("Ameiko", "friendly", "Innkeeper")
	s.AddNPC("Tsuto", "hostile", "Half-elf with a grudge")
	s.AddQuest("Save Sandpoint", "Stop the raids")
	s.AddQuest("Find Ameiko", "Search the glassworks")
	s.CompleteQuest("Save Sandpoint")
	s.AddEvent("Goblins raided the festival")
	s.AddEvent("Ameiko went missing")
	s.AddSecret("The raid was a distraction")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored SessionState
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(*s, restored) {
		t.Errorf("round trip mismatch:\noriginal: %+v\nrestored: %+v", *s, restored)
	}
}
