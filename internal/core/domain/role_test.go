package domain

import "testing"

func TestRole_Known(t *testing.T) {
	for _, r := range KnownRoles {
		if !r.Known() {
			t.Fatalf("role %q reported unknown", r)
		}
	}
	if Role("REGISTRAR").Known() {
		t.Fatal("REGISTRAR is not in the closed role set")
	}
	if Role("").Known() {
		t.Fatal("empty role must not be known")
	}
}

// An unrecognized tag survives the round trip so the fallback view can
// name it.
func TestRole_StringPreservesRawTag(t *testing.T) {
	if got := Role("REGISTRAR").String(); got != "REGISTRAR" {
		t.Fatalf("String() = %q, want raw tag", got)
	}
}
