package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
)

func alice() customer.Customer {
	return customer.Customer{
		ID:          "7",
		Name:        "Alice",
		Address:     "1 Main St",
		Email:       "a@x.com",
		PhoneNumber: "555-1234",
		MemberSince: "2020-01-01",
		Status:      "active",
	}
}

func mustState(t *testing.T, values map[string]string) form.State {
	t.Helper()
	s, err := form.FromValues(values)
	if err != nil {
		t.Fatalf("from values: %v", err)
	}
	return s
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		encoding form.QueryEncoding
		want     string
	}{
		{
			name:   "skips empty address",
			values: map[string]string{"name": "Bob", "address": "", "phone_number": "555-0000"},
			want:   "name=Bob&phone_number=555-0000",
		},
		{
			name:   "fixed order regardless of input",
			values: map[string]string{"phone_number": "1", "address": "2", "name": "3"},
			want:   "name=3&address=2&phone_number=1",
		},
		{
			name:   "ignores non searchable fields",
			values: map[string]string{"email": "a@x.com", "status": "active", "member_since": "2020-01-01"},
			want:   "",
		},
		{
			name:   "raw keeps reserved characters",
			values: map[string]string{"name": "A&B=C", "address": "1 Main"},
			want:   "name=A&B=C&address=1%20Main",
		},
		{
			name:   "raw escapes bytes a request line cannot carry",
			values: map[string]string{"name": "Zoë \"Z\" <z>", "address": "#4\tMain"},
			want:   "name=Zo%C3%AB%20%22Z%22%20%3Cz%3E&address=%234%09Main",
		},
		{
			name:     "url encoding escapes values",
			values:   map[string]string{"name": "A&B=C", "address": "1 Main"},
			encoding: form.QueryEncodingURL,
			want:     "name=A%26B%3DC&address=1+Main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoding := tt.encoding
			if encoding == "" {
				encoding = form.QueryEncodingRaw
			}
			got := mustState(t, tt.values).SearchQuery(encoding)
			if got != tt.want {
				t.Fatalf("query mismatch: want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseQueryEncoding(t *testing.T) {
	for raw, want := range map[string]form.QueryEncoding{"": form.QueryEncodingRaw, "RAW": form.QueryEncodingRaw, " url ": form.QueryEncodingURL} {
		got, err := form.ParseQueryEncoding(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: want %q, got %q (%v)", raw, want, got, err)
		}
	}
	if _, err := form.ParseQueryEncoding("base64"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestFromValues_RejectsUnknownField(t *testing.T) {
	if _, err := form.FromValues(map[string]string{"nickname": "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestState_IsValueObject(t *testing.T) {
	original := form.NewState(alice())
	changed, err := original.With(customer.FieldName, "Changed")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if got, _ := original.Value(customer.FieldName); got != "Alice" {
		t.Fatalf("original mutated: %q", got)
	}
	if got, _ := changed.Value(customer.FieldName); got != "Changed" {
		t.Fatalf("change not applied: %q", got)
	}

	values := original.Values()
	values[customer.FieldName] = "leak"
	if got, _ := original.Value(customer.FieldName); got != "Alice" {
		t.Fatalf("values map aliases state: %q", got)
	}
}

func TestState_PayloadMirrorsFormMinusID(t *testing.T) {
	s := form.NewState(alice())
	want := customer.Payload{
		Name:        "Alice",
		Address:     "1 Main St",
		Email:       "a@x.com",
		PhoneNumber: "555-1234",
		MemberSince: "2020-01-01",
		Status:      "active",
	}
	if diff := cmp.Diff(want, s.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestTransitions(t *testing.T) {
	base := form.View{
		Form:  mustState(t, map[string]string{"id": "99", "name": "Old", "email": "old@x.com"}),
		Flash: "previous",
	}

	t.Run("begin request empties flash", func(t *testing.T) {
		got := form.BeginRequest(base)
		if got.Flash != "" {
			t.Fatalf("flash not emptied: %q", got.Flash)
		}
		if diff := cmp.Diff(base.Form.Values(), got.Form.Values()); diff != "" {
			t.Fatalf("form changed (-want +got):\n%s", diff)
		}
	})

	t.Run("loaded overwrites every field", func(t *testing.T) {
		got := form.Loaded(base, alice())
		if diff := cmp.Diff(form.NewState(alice()).Values(), got.Form.Values()); diff != "" {
			t.Fatalf("form mismatch (-want +got):\n%s", diff)
		}
		if got.Flash != form.MessageSuccess {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("failed keeps the form", func(t *testing.T) {
		got := form.Failed(base, "bad request")
		if diff := cmp.Diff(base.Form.Values(), got.Form.Values()); diff != "" {
			t.Fatalf("form changed (-want +got):\n%s", diff)
		}
		if got.Flash != "bad request" {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("retrieve failure keeps only id", func(t *testing.T) {
		got := form.RetrieveFailed(base, "Customer not found")
		want := map[string]string{"id": "99", "name": "", "address": "", "email": "", "phone_number": "", "member_since": "", "status": ""}
		if diff := cmp.Diff(want, got.Form.Values()); diff != "" {
			t.Fatalf("form mismatch (-want +got):\n%s", diff)
		}
		if got.Flash != "Customer not found" {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("deleted keeps only id", func(t *testing.T) {
		got := form.Deleted(base)
		if id := got.Form.ID(); id != "99" {
			t.Fatalf("id: %q", id)
		}
		if name, _ := got.Form.Value(customer.FieldName); name != "" {
			t.Fatalf("name not cleared: %q", name)
		}
		if got.Flash != form.MessageDeleted {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("delete failure is generic", func(t *testing.T) {
		got := form.DeleteFailed(base)
		if got.Flash != form.MessageServerError {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("cleared resets form and flash but keeps results", func(t *testing.T) {
		withResults := form.Searched(base, []customer.Customer{alice()})
		got := form.Cleared(withResults)
		if !got.Form.Empty() || got.Flash != "" {
			t.Fatalf("not cleared: %+v", got)
		}
		if got.Results.Len() != 1 {
			t.Fatalf("results dropped")
		}
	})

	t.Run("search copies first row", func(t *testing.T) {
		second := alice()
		second.ID = "8"
		second.Name = "Alicia"
		got := form.Searched(base, []customer.Customer{alice(), second})
		if got.Results.Len() != 2 {
			t.Fatalf("rows: %d", got.Results.Len())
		}
		if got.Form.ID() != "7" {
			t.Fatalf("first row not copied: %q", got.Form.ID())
		}
	})

	t.Run("empty search leaves form untouched", func(t *testing.T) {
		got := form.Searched(base, nil)
		if got.Results == nil || got.Results.Len() != 0 {
			t.Fatalf("expected empty result set, got %+v", got.Results)
		}
		if diff := cmp.Diff(base.Form.Values(), got.Form.Values()); diff != "" {
			t.Fatalf("form changed (-want +got):\n%s", diff)
		}
		if got.Flash != form.MessageSuccess {
			t.Fatalf("flash: %q", got.Flash)
		}
	})

	t.Run("suspended overwrites form", func(t *testing.T) {
		suspended := alice()
		suspended.Status = "suspended"
		got := form.Suspended(base, suspended)
		if status, _ := got.Form.Value(customer.FieldStatus); status != "suspended" {
			t.Fatalf("status: %q", status)
		}
		if got.Flash != form.MessageSuspended {
			t.Fatalf("flash: %q", got.Flash)
		}
	})
}

func TestRowIDAndColumns(t *testing.T) {
	if got := form.RowID(3); got != "row_3" {
		t.Fatalf("row id: %q", got)
	}
	want := []string{"id", "name", "address", "email", "phone_number", "member_since", "status"}
	if diff := cmp.Diff(want, form.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}
