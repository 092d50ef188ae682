package queue_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/internal/queue"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func doc(name string, mutate ...func(*documents.Document)) documents.Document {
	d := documents.Document{
		ID:           uuid.New(),
		ContractorID: uuid.New(),
		Type:         documents.TypeInsurance,
		Name:         name,
		Filename:     name + ".pdf",
		ContentType:  "application/pdf",
		SizeBytes:    200_000,
		Status:       documents.StatusPending,
		CreatedAt:    now.AddDate(0, -1, 0),
	}
	for _, m := range mutate {
		m(&d)
	}
	return d
}

func expiring(days int) func(*documents.Document) {
	return func(d *documents.Document) {
		d.ExpiryDate = ptr(now.AddDate(0, 0, days))
	}
}

func names(entries []queue.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name string
		doc  documents.Document
		want int
	}{
		{"no expiry date", doc("a"), queue.PriorityNormal},
		{"expired", doc("a", expiring(-1)), queue.PriorityExpired},
		{"within urgent window", doc("a", expiring(5)), queue.PriorityUrgent},
		{"at urgent boundary", doc("a", expiring(7)), queue.PriorityUrgent},
		{"within expiring window", doc("a", expiring(20)), queue.PriorityExpiring},
		{"at expiring boundary", doc("a", expiring(30)), queue.PriorityExpiring},
		{"beyond windows", doc("a", expiring(90)), queue.PriorityNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := queue.Priority(tt.doc, now); got != tt.want {
				t.Errorf("Priority() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyDefaultView(t *testing.T) {
	docs := []documents.Document{
		doc("normal", expiring(90)),
		doc("expired", expiring(-2)),
		doc("urgent", expiring(3)),
		doc("expiring", expiring(15)),
		doc("no expiry"),
	}

	entries := queue.Apply(queue.DefaultView(), docs, now)

	// Priority ascending: expired, urgent, expiring, then the two normals
	// tie-broken by expiry date with the null date last.
	want := []string{"expired", "urgent", "expiring", "normal", "no expiry"}
	if got := names(entries); !equal(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestApplyStatusFilter(t *testing.T) {
	docs := []documents.Document{
		doc("pending"),
		doc("verified", func(d *documents.Document) { d.Status = documents.StatusVerified }),
		doc("rejected", func(d *documents.Document) { d.Status = documents.StatusRejected }),
		doc("expired verified", expiring(-1), func(d *documents.Document) { d.Status = documents.StatusVerified }),
	}

	tests := []struct {
		status queue.StatusFilter
		want   []string
	}{
		{queue.StatusPending, []string{"pending"}},
		{queue.StatusApproved, []string{"verified", "expired verified"}},
		{queue.StatusRejected, []string{"rejected"}},
		{queue.StatusExpired, []string{"expired verified"}},
		{queue.StatusAll, []string{"pending", "verified", "rejected", "expired verified"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			view := queue.DefaultView()
			view.Status = tt.status
			view.Sort = queue.SortCreatedAt
			view.Secondary = ""

			entries := queue.Apply(view, docs, now)
			if got := names(entries); !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyTypeFilter(t *testing.T) {
	docs := []documents.Document{
		doc("insurance"),
		doc("tax", func(d *documents.Document) { d.Type = documents.TypeTaxClearance }),
	}

	view := queue.DefaultView()
	view.Type = documents.TypeTaxClearance

	entries := queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"tax"}) {
		t.Errorf("got %v, want [tax]", got)
	}
}

func TestApplyExpiryFilter(t *testing.T) {
	docs := []documents.Document{
		doc("expired", expiring(-1)),
		doc("expiring", expiring(14)),
		doc("valid", expiring(120)),
		doc("no expiry"),
	}

	tests := []struct {
		expiry queue.ExpiryFilter
		want   []string
	}{
		{queue.ExpiryExpired, []string{"expired"}},
		{queue.ExpiryExpiring, []string{"expiring"}},
		{queue.ExpiryValid, []string{"valid", "no expiry"}},
		{queue.ExpiryAll, []string{"expired", "expiring", "valid", "no expiry"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.expiry), func(t *testing.T) {
			view := queue.DefaultView()
			view.Expiry = tt.expiry
			view.Sort = queue.SortCreatedAt
			view.Secondary = ""

			entries := queue.Apply(view, docs, now)
			if got := names(entries); !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplySearch(t *testing.T) {
	docs := []documents.Document{
		doc("Liability Insurance"),
		doc("Tax Clearance", func(d *documents.Document) {
			d.Type = documents.TypeTaxClearance
			d.DocumentNumber = ptr("TC-2026-001")
		}),
		doc("Bank Letter", func(d *documents.Document) {
			d.Type = documents.TypeBankConfirmation
			d.Notes = ptr("awaiting countersignature")
		}),
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"matches name case-insensitively", "liability", []string{"Liability Insurance"}},
		{"matches document number", "tc-2026", []string{"Tax Clearance"}},
		{"matches notes", "countersign", []string{"Bank Letter"}},
		{"matches type", "tax_clearance", []string{"Tax Clearance"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := queue.DefaultView()
			view.Search = tt.search

			entries := queue.Apply(view, docs, now)
			if got := names(entries); !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplySortDirections(t *testing.T) {
	docs := []documents.Document{
		doc("bravo"),
		doc("alpha"),
		doc("charlie"),
	}

	view := queue.DefaultView()
	view.Sort = queue.SortName
	view.Secondary = ""

	entries := queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"alpha", "bravo", "charlie"}) {
		t.Errorf("asc: got %v", got)
	}

	view.Direction = queue.SortDesc
	entries = queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"charlie", "bravo", "alpha"}) {
		t.Errorf("desc: got %v", got)
	}
}

func TestApplyNullsLast(t *testing.T) {
	docs := []documents.Document{
		doc("no date"),
		doc("late", expiring(60)),
		doc("early", expiring(10)),
	}

	view := queue.DefaultView()
	view.Sort = queue.SortExpiryDate
	view.Secondary = ""

	entries := queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"early", "late", "no date"}) {
		t.Errorf("asc: got %v, want nulls last", got)
	}

	// Direction flips present values only; the null entry stays last.
	view.Direction = queue.SortDesc
	entries = queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"late", "early", "no date"}) {
		t.Errorf("desc: got %v, want nulls still last", got)
	}
}

func TestApplySecondarySort(t *testing.T) {
	docs := []documents.Document{
		doc("urgent late", expiring(6)),
		doc("urgent early", expiring(2)),
		doc("expired", expiring(-1)),
	}

	view := queue.DefaultView()

	entries := queue.Apply(view, docs, now)
	want := []string{"expired", "urgent early", "urgent late"}
	if got := names(entries); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyStableWithinTies(t *testing.T) {
	first := doc("first")
	second := doc("second")
	docs := []documents.Document{first, second}

	view := queue.DefaultView()
	view.Sort = queue.SortPriority
	view.Secondary = ""

	entries := queue.Apply(view, docs, now)
	if got := names(entries); !equal(got, []string{"first", "second"}) {
		t.Errorf("got %v, want input order preserved on ties", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	docs := []documents.Document{
		doc("bravo"),
		doc("alpha"),
	}

	view := queue.DefaultView()
	view.Sort = queue.SortName
	view.Secondary = ""
	queue.Apply(view, docs, now)

	if docs[0].Name != "bravo" || docs[1].Name != "alpha" {
		t.Error("input slice was reordered")
	}
}

func TestDefaultView(t *testing.T) {
	view := queue.DefaultView()

	if view.Status != queue.StatusAll || view.Expiry != queue.ExpiryAll {
		t.Errorf("filters: got %s/%s, want all/all", view.Status, view.Expiry)
	}
	if view.Sort != queue.SortPriority || view.Direction != queue.SortAsc {
		t.Errorf("sort: got %s %s, want priority asc", view.Sort, view.Direction)
	}
	if view.Secondary != queue.SortExpiryDate {
		t.Errorf("secondary: got %s, want expiry_date", view.Secondary)
	}
}

func TestViewFromQuery(t *testing.T) {
	t.Run("all params", func(t *testing.T) {
		values := url.Values{
			"status":    {"pending"},
			"type":      {"insurance"},
			"expiry":    {"expiring"},
			"search":    {"liability"},
			"sort":      {"name"},
			"direction": {"desc"},
		}

		view, err := queue.ViewFromQuery(values)
		if err != nil {
			t.Fatalf("ViewFromQuery: %v", err)
		}
		if view.Status != queue.StatusPending || view.Type != documents.TypeInsurance {
			t.Errorf("filters: got %+v", view)
		}
		if view.Sort != queue.SortName || view.Direction != queue.SortDesc {
			t.Errorf("sort: got %s %s", view.Sort, view.Direction)
		}
	})

	t.Run("explicit sort clears secondary", func(t *testing.T) {
		view, err := queue.ViewFromQuery(url.Values{"sort": {"name"}})
		if err != nil {
			t.Fatalf("ViewFromQuery: %v", err)
		}
		if view.Secondary != "" {
			t.Errorf("secondary: got %s, want cleared", view.Secondary)
		}
	})

	t.Run("explicit secondary kept", func(t *testing.T) {
		view, err := queue.ViewFromQuery(url.Values{
			"sort":      {"name"},
			"secondary": {"created_at"},
		})
		if err != nil {
			t.Fatalf("ViewFromQuery: %v", err)
		}
		if view.Secondary != queue.SortCreatedAt {
			t.Errorf("secondary: got %s, want created_at", view.Secondary)
		}
	})

	t.Run("empty query yields default", func(t *testing.T) {
		view, err := queue.ViewFromQuery(url.Values{})
		if err != nil {
			t.Fatalf("ViewFromQuery: %v", err)
		}
		if view != queue.DefaultView() {
			t.Errorf("got %+v, want default view", view)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		tests := []url.Values{
			{"status": {"archived"}},
			{"type": {"drivers_license"}},
			{"expiry": {"soonish"}},
			{"sort": {"size"}},
			{"direction": {"sideways"}},
			{"secondary": {"size"}},
		}

		for _, values := range tests {
			if _, err := queue.ViewFromQuery(values); !errors.Is(err, queue.ErrInvalidView) {
				t.Errorf("ViewFromQuery(%v): got %v, want ErrInvalidView", values, err)
			}
		}
	})
}
