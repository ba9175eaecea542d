package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindConversationMissing(t *testing.T) {
	s := NewMessageStore()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := s.FindConversation(context.Background(), a, b); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateConversationIsUniquePerPair(t *testing.T) {
	s := NewMessageStore()
	ctx := context.Background()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	first, err := s.CreateConversation(ctx, a, b)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	// Creating again, with the pair reversed, must yield the same record.
	second, err := s.CreateConversation(ctx, b, a)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one conversation per pair, got %s and %s", first.ID.Hex(), second.ID.Hex())
	}

	found, err := s.FindConversation(ctx, b, a)
	if err != nil {
		t.Fatalf("FindConversation: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("lookup with reversed pair returned %s, want %s", found.ID.Hex(), first.ID.Hex())
	}
}

func TestMessagesKeepInsertionOrder(t *testing.T) {
	s := NewMessageStore()
	ctx := context.Background()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	conv, err := s.CreateConversation(ctx, a, b)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	texts := []string{"hello", "hi back", "how are you"}
	for i, text := range texts {
		sender, receiver := a, b
		if i%2 == 1 {
			sender, receiver = b, a
		}
		msg, err := s.CreateMessage(ctx, sender, receiver, text)
		if err != nil {
			t.Fatalf("CreateMessage: %v", err)
		}
		if err := s.AppendMessageRef(ctx, conv.ID, msg.ID); err != nil {
			t.Fatalf("AppendMessageRef: %v", err)
		}
	}

	messages, err := s.ListMessages(ctx, b, a)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(messages))
	}
	for i, msg := range messages {
		if msg.Message != texts[i] {
			t.Fatalf("message %d = %q, want %q", i, msg.Message, texts[i])
		}
	}
}

func TestListMessagesWithoutConversation(t *testing.T) {
	s := NewMessageStore()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	messages, err := s.ListMessages(context.Background(), a, b)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestAppendMessageRefMissingConversation(t *testing.T) {
	s := NewMessageStore()
	err := s.AppendMessageRef(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
