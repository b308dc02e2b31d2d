package models

import (
	"errors"
	"testing"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

func TestNewChapter_rejectsNonPositiveOrder(t *testing.T) {
	for _, order := range []int{0, -1} {
		if _, err := NewChapter(1, "Title", order, ""); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("NewChapter(order=%d) = %v, want ErrInvalidInput", order, err)
		}
	}
}

func TestNewChapter_recordsCreatedEvent(t *testing.T) {
	c, err := NewChapter(2, "Opening", 1, "It begins.")
	if err != nil {
		t.Fatalf("NewChapter failed: %v", err)
	}

	evts := c.DomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	created, ok := evts[0].(events.ChapterCreatedEvent)
	if !ok {
		t.Fatalf("expected ChapterCreatedEvent, got %T", evts[0])
	}
	if created.StoryID != 2 || created.ChapterOrder != 1 {
		t.Fatalf("event fields = %d/%d", created.StoryID, created.ChapterOrder)
	}

	c.BindID(11)
	created = c.DomainEvents()[0].(events.ChapterCreatedEvent)
	if created.ChapterID != 11 {
		t.Fatalf("BindID should backfill the created event, got %d", created.ChapterID)
	}
}

func TestChapter_LinkCharacter(t *testing.T) {
	c, _ := NewChapter(1, "Title", 1, "")
	c.BindID(1)
	c.ClearDomainEvents()

	hero := NewCharacter(1, "Serela", TierMain, "", "")
	hero.BindID(4)

	if err := c.LinkCharacter(hero); err != nil {
		t.Fatalf("LinkCharacter failed: %v", err)
	}
	if len(c.Characters) != 1 {
		t.Fatalf("expected 1 linked character, got %d", len(c.Characters))
	}

	if err := c.LinkCharacter(hero); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("double link = %v, want ErrInvalidInput", err)
	}

	evts := c.DomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	linked, ok := evts[0].(events.ChapterCharacterLinkedEvent)
	if !ok {
		t.Fatalf("expected ChapterCharacterLinkedEvent, got %T", evts[0])
	}
	if linked.ChapterID != 1 || linked.CharacterID != 4 {
		t.Fatalf("event ids = %d/%d", linked.ChapterID, linked.CharacterID)
	}
}

func TestChapter_UnlinkCharacter(t *testing.T) {
	c, _ := NewChapter(1, "Title", 1, "")
	c.BindID(1)
	hero := NewCharacter(1, "Serela", TierMain, "", "")
	hero.BindID(4)
	if err := c.LinkCharacter(hero); err != nil {
		t.Fatalf("LinkCharacter failed: %v", err)
	}
	c.ClearDomainEvents()

	if err := c.UnlinkCharacter(4); err != nil {
		t.Fatalf("UnlinkCharacter failed: %v", err)
	}
	if len(c.Characters) != 0 {
		t.Fatalf("cast should be empty after unlink")
	}
	if err := c.UnlinkCharacter(4); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unlink of absent character = %v, want ErrInvalidInput", err)
	}

	evts := c.DomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	if _, ok := evts[0].(events.ChapterCharacterUnlinkedEvent); !ok {
		t.Fatalf("expected ChapterCharacterUnlinkedEvent, got %T", evts[0])
	}
}

func TestChapter_Update_keepsOrder(t *testing.T) {
	c, _ := NewChapter(1, "Draft", 3, "old prose")
	c.BindID(8)
	c.ClearDomainEvents()

	if err := c.Update("Final", "new prose"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if c.ChapterOrder != 3 {
		t.Fatalf("Update must not change the reading-order slot, got %d", c.ChapterOrder)
	}
	if c.Title != "Final" || c.Content != "new prose" {
		t.Fatalf("fields not updated: %q %q", c.Title, c.Content)
	}
}

func TestCharacter_lifecycleEvents(t *testing.T) {
	ch := NewCharacter(2, "Serela Vance", TierMain, "cartographer", "")

	created, ok := ch.DomainEvents()[0].(events.CharacterCreatedEvent)
	if !ok {
		t.Fatalf("expected CharacterCreatedEvent, got %T", ch.DomainEvents()[0])
	}
	if created.UniverseID != 2 || created.Tier != "main" {
		t.Fatalf("event fields = %d/%q", created.UniverseID, created.Tier)
	}

	ch.BindID(6)
	ch.ClearDomainEvents()

	if err := ch.Update("Serela Vance", TierRecurring, "demoted", ""); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := ch.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := ch.Update("x", TierMinor, "", ""); !errors.Is(err, domain.ErrAggregateDeleted) {
		t.Fatalf("Update after delete = %v, want ErrAggregateDeleted", err)
	}

	evts := ch.DomainEvents()
	if len(evts) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evts))
	}
	if _, ok := evts[0].(events.CharacterUpdatedEvent); !ok {
		t.Fatalf("first event = %T, want CharacterUpdatedEvent", evts[0])
	}
	if _, ok := evts[1].(events.CharacterDeletedEvent); !ok {
		t.Fatalf("second event = %T, want CharacterDeletedEvent", evts[1])
	}
}
