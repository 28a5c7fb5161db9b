package chat

import (
	"testing"

	"voxelforge/internal/config"
)

func TestPushTrimsToMaxMessages(t *testing.T) {
	Clear()
	for i := 0; i < MaxMessages+3; i++ {
		Push("line")
	}
	if got := len(Visible()); got != MaxMessages {
		t.Fatalf("expected %d visible messages, got %d", MaxMessages, got)
	}
}

func TestPushTruncatesLongLines(t *testing.T) {
	Clear()
	long := make([]byte, MaxTextLength+50)
	for i := range long {
		long[i] = 'a'
	}
	Push(string(long))
	got := Visible()
	if len(got) != 1 || len(got[0]) != MaxTextLength {
		t.Fatalf("expected truncated line of length %d, got %d", MaxTextLength, len(got[0]))
	}
}

func TestViewCommandAcceptsInRange(t *testing.T) {
	Clear()
	config.SetRenderDistance(10)

	Submit("/view 2")
	if got := config.GetRenderDistance(); got != 2 {
		t.Fatalf("expected render distance 2, got %d", got)
	}
}

func TestViewCommandRejectsOutOfRange(t *testing.T) {
	Clear()
	config.SetRenderDistance(2)

	Submit("/view 2")
	Submit("/view 30")

	if got := config.GetRenderDistance(); got != 2 {
		t.Fatalf("render_radius should be unchanged by the rejected command, got %d", got)
	}

	msgs := Visible()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Viewing distance must be between 1 and 24." {
		t.Fatalf("expected rejection message as the last chat line, got %v", msgs)
	}
}

func TestViewCommandRejectsNonInteger(t *testing.T) {
	Clear()
	config.SetRenderDistance(8)

	Submit("/view abc")

	if got := config.GetRenderDistance(); got != 8 {
		t.Fatalf("render_radius should be unchanged, got %d", got)
	}
	msgs := Visible()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Viewing distance must be between 1 and 24." {
		t.Fatalf("expected rejection message, got %v", msgs)
	}
}

func TestPlainTextIsAppendedVerbatim(t *testing.T) {
	Clear()
	Submit("hello world")
	msgs := Visible()
	if len(msgs) != 1 || msgs[0] != "hello world" {
		t.Fatalf("expected plain chat line preserved verbatim, got %v", msgs)
	}
}
