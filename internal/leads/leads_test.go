package leads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db.SetLogger(zerolog.Nop())
	repository.SetLogger(zerolog.Nop())
	SetLogger(zerolog.Nop())

	database := db.NewSQLite(":memory:")
	if err := database.InitDb(context.Background()); err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService(repository.NewDBLeadRepository(database))
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name     string
		reg      Registration
		badField string
	}{
		{"Valid", Registration{Name: "Maria", Email: "maria@example.com"}, ""},
		{"Missing name", Registration{Email: "maria@example.com"}, "name"},
		{"Missing email", Registration{Name: "Maria"}, "email"},
		{"Bad email", Registration{Name: "Maria", Email: "maria-at-example"}, "email"},
		{"Name too long", Registration{Name: strings.Repeat("a", 121), Email: "a@b.co"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.badField == "" {
				if err != nil {
					t.Errorf("Expected valid registration, got %v", err)
				}
				return
			}
			var errs validation.Errors
			if !errors.As(err, &errs) {
				t.Fatalf("Expected validation.Errors, got %v", err)
			}
			if _, ok := errs[tt.badField]; !ok {
				t.Errorf("Expected error on %q, got %v", tt.badField, errs)
			}
		})
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.Register(ctx, Registration{Name: "  João ", Email: " Joao@Example.COM "})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.Name != "João" || first.Email != "joao@example.com" {
		t.Errorf("Expected normalized lead, got %+v", first)
	}
	if first.Contacted {
		t.Error("New leads start uncontacted")
	}

	time.Sleep(2 * time.Millisecond)
	second, err := svc.Register(ctx, Registration{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("Invalid registration is not stored", func(t *testing.T) {
		if _, err := svc.Register(ctx, Registration{Name: "X", Email: "nope"}); err == nil {
			t.Fatal("Expected validation error")
		}
		list, _ := svc.List(ctx)
		if len(list) != 2 {
			t.Errorf("Expected 2 leads, got %d", len(list))
		}
	})

	t.Run("Newest first", func(t *testing.T) {
		list, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if list[0].ID != second.ID || list[1].ID != first.ID {
			t.Errorf("Expected newest first, got %+v", list)
		}
	})

	t.Run("Contacted and delete", func(t *testing.T) {
		if err := svc.SetContacted(ctx, first.ID, true); err != nil {
			t.Fatalf("SetContacted: %v", err)
		}
		if err := svc.Delete(ctx, second.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		list, _ := svc.List(ctx)
		if len(list) != 1 || !list[0].Contacted {
			t.Errorf("Unexpected leads %+v", list)
		}
		if err := svc.Delete(ctx, second.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
