package chat

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/scene"
)

func TestTurnRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     TurnRequest
		wantErr bool
	}{
		{
			name:    "missing session id",
			req:     TurnRequest{Message: "hello"},
			wantErr: true,
		},
		{
			name:    "missing message and actions",
			req:     TurnRequest{SessionID: uuid.New()},
			wantErr: true,
		},
		{
			name: "message only",
			req:  TurnRequest{SessionID: uuid.New(), Message: "I search the room"},
		},
		{
			name: "actions only",
			req: TurnRequest{
				SessionID: uuid.New(),
				Actions:   []scene.PlayerAction{{Character: "Thorin", Action: "I attack"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
