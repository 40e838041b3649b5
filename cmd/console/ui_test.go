package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jwebster45206/campaign-engine/pkg/state"
)

func newTestUI() ConsoleUI {
	cfg := &ConsoleConfig{APIBaseURL: "http://localhost:8080"}
	ss := state.NewSessionState()
	return NewConsoleUI(cfg, &http.Client{}, ss)
}

func TestHandleCommand_StateOmitsSecrets(t *testing.T) {
	ui := newTestUI()
	ui.session.AddSecret("The raid was a distraction")
	ui.session.AddNPC("Ameiko", "friendly", "Innkeeper")

	model, _ := ui.handleCommand("/state")
	updated := model.(ConsoleUI)

	if len(updated.transcript) == 0 {
		t.Fatal("expected a transcript entry from /state")
	}
	entry := updated.transcript[len(updated.transcript)-1]
	if entry.role != "system" {
		t.Errorf("expected system entry, got %q", entry.role)
	}
	if strings.Contains(entry.content, "DM NOTES") || strings.Contains(entry.content, "The raid was a distraction") {
		t.Errorf("expected secrets omitted from /state output, got:\n%s", entry.content)
	}
	if !strings.Contains(entry.content, "LOCATION:") || !strings.Contains(entry.content, "Ameiko") {
		t.Errorf("expected session summary in /state output, got:\n%s", entry.content)
	}
}

func TestHandleCommand_UnknownSuggests(t *testing.T) {
	ui := newTestUI()

	model, _ := ui.handleCommand("/hlep")
	updated := model.(ConsoleUI)

	if len(updated.transcript) == 0 {
		t.Fatal("expected a transcript entry for unknown command")
	}
	entry := updated.transcript[len(updated.transcript)-1]
	if !strings.Contains(entry.content, "Did you mean /help?") {
		t.Errorf("expected /help suggestion, got %q", entry.content)
	}
}

func TestHandleCommand_CopyWithoutReply(t *testing.T) {
	ui := newTestUI()

	model, _ := ui.handleCommand("/copy")
	updated := model.(ConsoleUI)

	entry := updated.transcript[len(updated.transcript)-1]
	if !strings.Contains(entry.content, "Nothing to copy") {
		t.Errorf("expected nothing-to-copy notice, got %q", entry.content)
	}
}
