package ws

import "testing"

func TestPresenceLookupUnknownUser(t *testing.T) {
	p := NewPresence()
	if _, ok := p.Lookup("u1"); ok {
		t.Fatal("expected unknown user to be absent")
	}
}

func TestPresenceRegisterAndLookup(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	connID, ok := p.Lookup("u1")
	if !ok || connID != "c1" {
		t.Fatalf("expected c1, got %q (ok=%v)", connID, ok)
	}
}

func TestPresenceLastConnectionWins(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Register("u1", "c2")
	connID, ok := p.Lookup("u1")
	if !ok || connID != "c2" {
		t.Fatalf("expected newest connection c2, got %q (ok=%v)", connID, ok)
	}
}

func TestPresenceStaleDisconnectIsNoop(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Register("u1", "c2")
	// c1 was superseded; its late disconnect must not clear c2.
	p.Unregister("c1")
	connID, ok := p.Lookup("u1")
	if !ok || connID != "c2" {
		t.Fatalf("stale disconnect cleared newer mapping: got %q (ok=%v)", connID, ok)
	}
}

func TestPresenceUnregisterRemovesMapping(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Unregister("c1")
	if _, ok := p.Lookup("u1"); ok {
		t.Fatal("expected user to be offline after disconnect")
	}
}

func TestPresenceUnregisterUnknownConnection(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Unregister("never-registered")
	if _, ok := p.Lookup("u1"); !ok {
		t.Fatal("unregistering an unknown connection must not touch other entries")
	}
}

func TestPresenceRepeatedRegisterIsIdempotent(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Register("u1", "c1")
	connID, ok := p.Lookup("u1")
	if !ok || connID != "c1" {
		t.Fatalf("expected c1, got %q (ok=%v)", connID, ok)
	}
	p.Unregister("c1")
	if _, ok := p.Lookup("u1"); ok {
		t.Fatal("expected user to be offline after disconnect")
	}
}

func TestPresenceOnline(t *testing.T) {
	p := NewPresence()
	p.Register("u1", "c1")
	p.Register("u2", "c2")
	p.Unregister("c1")
	online := p.Online()
	if len(online) != 1 || online[0] != "u2" {
		t.Fatalf("expected [u2], got %v", online)
	}
}
