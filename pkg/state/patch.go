package state

import "encoding/json"

// StatePatch is the sparse diff the backend embeds in its reply. Every
// field is optional; absent and null behave identically. It is much faster
// for the backend to produce than a full session state.
type StatePatch struct {
	HPChanges         map[string]int    `json:"hp_changes,omitempty"`
	LocationChange    *string           `json:"location_change,omitempty"`
	CombatStarted     *bool             `json:"combat_started,omitempty"`
	CombatEnded       *bool             `json:"combat_ended,omitempty"`
	NewNPC            *NPCInfo          `json:"new_npc,omitempty"`
	NPCAttitudeChange map[string]string `json:"npc_attitude_change,omitempty"`
	QuestUpdate       *QuestUpdate      `json:"quest_update,omitempty"`
	NewEvent          *string           `json:"new_event,omitempty"`
	TimeAdvance       *string           `json:"time_advance,omitempty"`
}

// QuestUpdate describes a quest change inside a patch: a new quest, a
// completed quest title, or both.
type QuestUpdate struct {
	New       *NewQuest `json:"new,omitempty"`
	Completed string    `json:"completed,omitempty"`
}

// NewQuest is the payload for a newly issued quest.
type NewQuest struct {
	Title     string `json:"title"`
	Objective string `json:"objective"`
}

// IsEmpty reports whether the patch requests no changes.
func (p *StatePatch) IsEmpty() bool {
	return p == nil || (len(p.HPChanges) == 0 &&
		p.LocationChange == nil &&
		p.CombatStarted == nil &&
		p.CombatEnded == nil &&
		p.NewNPC == nil &&
		len(p.NPCAttitudeChange) == 0 &&
		p.QuestUpdate == nil &&
		p.NewEvent == nil &&
		p.TimeAdvance == nil)
}

// UnmarshalJSON decodes a patch field by field. The top level must be a
// JSON object, but an individual field that fails to decode (wrong type,
// malformed nesting) is dropped without poisoning its siblings. Unknown
// fields are ignored. The backend drifts from the documented schema often
// enough that rejecting a whole patch over one bad field would discard
// usable updates.
func (p *StatePatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decode := func(key string, dst any) bool {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			return false
		}
		return json.Unmarshal(raw, dst) == nil
	}

	// hp_changes values arrive as JSON numbers; some backends emit them
	// as floats, so truncate rather than fail.
	var hp map[string]float64
	if decode("hp_changes", &hp) && len(hp) > 0 {
		p.HPChanges = make(map[string]int, len(hp))
		for name, delta := range hp {
			p.HPChanges[name] = int(delta)
		}
	}

	var location string
	if decode("location_change", &location) && location != "" {
		p.LocationChange = &location
	}

	var started bool
	if decode("combat_started", &started) {
		p.CombatStarted = &started
	}

	var ended bool
	if decode("combat_ended", &ended) {
		p.CombatEnded = &ended
	}

	var npc NPCInfo
	if decode("new_npc", &npc) {
		p.NewNPC = &npc
	}

	var attitudes map[string]string
	if decode("npc_attitude_change", &attitudes) && len(attitudes) > 0 {
		p.NPCAttitudeChange = attitudes
	}

	var quest QuestUpdate
	if decode("quest_update", &quest) {
		p.QuestUpdate = &quest
	}

	var event string
	if decode("new_event", &event) && event != "" {
		p.NewEvent = &event
	}

	var timeAdvance string
	if decode("time_advance", &timeAdvance) && timeAdvance != "" {
		p.TimeAdvance = &timeAdvance
	}

	return nil
}
