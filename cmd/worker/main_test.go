package main

import (
	"encoding/json"
	"testing"

	wbevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

func TestUniverseIDFromPayload(t *testing.T) {
	tests := []struct {
		name  string
		event any
		want  int64
	}{
		{"created event", wbevents.UniverseCreatedEvent{Header: wbevents.NewHeader(), UniverseID: 7, Name: "The Ember Realms"}, 7},
		{"updated event", wbevents.UniverseUpdatedEvent{Header: wbevents.NewHeader(), UniverseID: 12, Name: "The Ember Realms"}, 12},
		{"deleted event", wbevents.UniverseDeletedEvent{Header: wbevents.NewHeader(), UniverseID: 3, Name: "The Ember Realms"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := universeIDFromPayload(payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("universe id = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUniverseIDFromPayload_Malformed(t *testing.T) {
	if _, err := universeIDFromPayload([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
