package mongo

import (
	"testing"

	auditstore "digilist/internal/audit/store"
	bookingrepo "digilist/internal/bookings/repository"
	listingrepo "digilist/internal/listings/repository"
)

func TestCollections_MatchRepositories(t *testing.T) {
	want := map[string]bool{
		listingrepo.CollectionName: false,
		bookingrepo.CollectionName: false,
		auditstore.CollectionName:  false,
	}

	for _, def := range Collections() {
		if _, ok := want[def.Name]; !ok {
			t.Errorf("migration manages %q which no repository reads", def.Name)
			continue
		}
		want[def.Name] = true
		if def.Validator == nil {
			t.Errorf("collection %q has no validator", def.Name)
		}
		if len(def.Indexes) == 0 {
			t.Errorf("collection %q has no indexes", def.Name)
		}
	}

	for name, seen := range want {
		if !seen {
			t.Errorf("repository collection %q is not migrated", name)
		}
	}
}

func TestAuditIndexes_EventIDUnique(t *testing.T) {
	idx := AuditIndexes[0]
	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Fatal("event_id index must be unique")
	}
}
