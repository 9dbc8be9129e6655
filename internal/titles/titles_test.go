package titles

import "testing"

func TestResolveKnownPatterns(t *testing.T) {
	r := New("Jane Doe")

	tests := []struct {
		title  string
		person string
		with   string
	}{
		{"Jane Doe wrote on John Smith's timeline.", "Jane Doe", "John Smith"},
		{"Bob Jones wrote on Jane Doe's timeline.", "Bob Jones", "Jane Doe"},
		{"Jane Doe likes Bob Jones's photo.", "Jane Doe", "Bob Jones"},
		{"Bob Jones reacted to Jane Doe's comment.", "Bob Jones", "Jane Doe"},
		{"Jane Doe shared a link to Bob Jones's timeline.", "Jane Doe", "Bob Jones"},
		{"Jane Doe commented on Bob Jones's post.", "Jane Doe", "Bob Jones"},
		{"Jane Doe posted in Hiking Club", "Jane Doe", "Hiking Club"},
		{"Bob Jones replied to Jane Doe", "Bob Jones", "Jane Doe"},
	}

	for _, tt := range tests {
		person, with, ok := r.Resolve(tt.title)
		if !ok {
			t.Errorf("Resolve(%q): expected a match", tt.title)
			continue
		}
		if person != tt.person || with != tt.with {
			t.Errorf("Resolve(%q) = (%q, %q), want (%q, %q)",
				tt.title, person, with, tt.person, tt.with)
		}
	}
}

func TestResolveOwnContentBranch(t *testing.T) {
	r := New("Jane Doe")

	person, with, ok := r.Resolve("Jane Doe likes their own post.")
	if !ok {
		t.Fatal("expected a match for own-content title")
	}
	if person != "Jane Doe" {
		t.Errorf("person = %q, want %q", person, "Jane Doe")
	}
	if with != "Jane Doe" {
		t.Errorf("with = %q, want self identity %q", with, "Jane Doe")
	}
}

func TestResolveYourBranch(t *testing.T) {
	r := New("Harriet Shaw")

	person, with, ok := r.Resolve("Jane Doe wrote on your timeline.")
	if !ok {
		t.Fatal("expected a match")
	}
	if person != "Jane Doe" || with != "Harriet Shaw" {
		t.Errorf("got (%q, %q), want (%q, %q)", person, with, "Jane Doe", "Harriet Shaw")
	}
}

// A counterparty that merely resembles the own-content phrasing must keep its
// name: the " own " check is case-sensitive.
func TestResolveNameResemblingOwnNotRewritten(t *testing.T) {
	r := New("Jane Doe")

	person, with, ok := r.Resolve("Jane Doe wrote on My Own Cat's timeline.")
	if !ok {
		t.Fatal("expected a match")
	}
	if person != "Jane Doe" {
		t.Errorf("person = %q, want %q", person, "Jane Doe")
	}
	if with != "My Own Cat" {
		t.Errorf("with = %q, want %q", with, "My Own Cat")
	}
}

func TestResolveSelfPrefixFallback(t *testing.T) {
	r := New("Jane Doe")

	person, with, ok := r.Resolve("Jane Doe updated her profile picture.")
	if !ok {
		t.Fatal("expected the self-prefix fallback to match")
	}
	if person != "Jane Doe" {
		t.Errorf("person = %q, want %q", person, "Jane Doe")
	}
	if with != "" {
		t.Errorf("with = %q, want empty", with)
	}
}

func TestResolveNoMatchLeavesUnresolved(t *testing.T) {
	r := New("Jane Doe")

	for _, title := range []string{
		"Somebody else did something.",
		"jane doe updated her profile picture.", // prefix check is case-sensitive
	} {
		if _, _, ok := r.Resolve(title); ok {
			t.Errorf("Resolve(%q): expected no resolution", title)
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	r := New("Jane Doe")
	title := "Jane Doe wrote on John Smith's timeline."

	p1, w1, ok1 := r.Resolve(title)
	p2, w2, ok2 := r.Resolve(title)
	if p1 != p2 || w1 != w2 || ok1 != ok2 {
		t.Errorf("Resolve is not idempotent: (%q, %q, %v) != (%q, %q, %v)",
			p1, w1, ok1, p2, w2, ok2)
	}
}
