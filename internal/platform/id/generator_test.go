package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestTimeOrdered_NewID(t *testing.T) {
	t.Parallel()

	gen := NewTimeOrdered("run_")
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if first >= second {
		t.Fatalf("expected ids in creation order: %s then %s", first, second)
	}

	parsed, err := Parse("run_", first)
	if err != nil {
		t.Fatalf("parse %q: %v", first, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7 uuid, got %d", parsed.Version())
	}
}

func TestParse_RejectsForeignIDs(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "run_", "job_" + uuid.NewString(), "run_not-a-uuid"} {
		if _, err := Parse("run_", raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
