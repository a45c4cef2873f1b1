package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/query"
	perr "workshopdex/internal/platform/errors"
	kit "workshopdex/internal/platform/testkit"
)

func TestFilterInput_Snapshot(t *testing.T) {
	limit := 0
	in := FilterInput{
		Language:    "ja-JP",
		Tags:        []string{" Mod ", "", "QoL"},
		OrderBy:     OrderScore,
		Limit:       &limit,
		Title:       "  ",
		LastUpdated: "2021-01-01",
	}
	s, err := in.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if s.Language == nil || *s.Language != "Japanese" {
		t.Fatalf("language = %v", s.Language)
	}
	if len(s.Tags) != 2 || s.Tags[0] != "Mod" || s.Tags[1] != "QoL" {
		t.Fatalf("tags = %q", s.Tags)
	}
	if s.Title != nil {
		t.Fatalf("blank title must be absent, got %q", *s.Title)
	}
	if s.Limit == nil || *s.Limit != 0 {
		t.Fatalf("limit = %v", s.Limit)
	}
	if s.AppID != nil {
		t.Fatal("filter input never sets the app")
	}

	got, err := query.Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if got != "language=Japanese&tags=Mod&tags=QoL&order_by=Score&limit=0&last_updated=1609459200" {
		t.Fatalf("query = %q", got)
	}
}

func TestFilterInput_UnknownLanguage(t *testing.T) {
	_, err := FilterInput{Language: "Klingon"}.Snapshot()
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "language" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestQueryInput_Snapshot(t *testing.T) {
	s, err := QueryInput{FilterInput: FilterInput{Language: "english"}, App: "294100"}.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if s.AppID == nil || *s.AppID != "294100" || *s.Language != "English" {
		t.Fatalf("snapshot = %+v", s)
	}

	s, err = QueryInput{}.Snapshot()
	if err != nil || s.AppID != nil || s.Language != nil {
		t.Fatalf("empty snapshot = %+v, %v", s, err)
	}
}

func TestNewSection(t *testing.T) {
	ok := NewSection(workshop.Payload(`{"a":1}`), nil)
	if ok.Err != nil || ok.Error != nil || string(ok.Data) != `{"a":1}` {
		t.Fatalf("ok section = %+v", ok)
	}

	cause := perr.NotFoundf("gone")
	bad := NewSection(nil, cause)
	if !errors.Is(bad.Err, cause) || bad.Error == nil || bad.Error.Code != perr.ErrorCodeNotFound {
		t.Fatalf("bad section = %+v", bad)
	}
	raw, _ := json.Marshal(bad)
	if string(raw) != `{"error":{"code":9,"message":"gone"}}` {
		t.Fatalf("json = %s", raw)
	}
}

func TestNewListingSection(t *testing.T) {
	res := workshop.Fail(workshop.Failure{Status: 500, StatusText: "Internal Server Error", Body: "boom"})
	s := NewListingSection(res, nil)
	raw, _ := json.Marshal(s)
	kit.MustContain(t, string(raw), `"ok":false`)
	kit.MustContain(t, string(raw), `"failure":{"status":500`)

	e := NewListingSection(workshop.Result{}, perr.New(perr.ErrorCodeUnavailable, "down"))
	if e.Error == nil || e.Error.Code != perr.ErrorCodeUnavailable || e.OK {
		t.Fatalf("error section = %+v", e)
	}
}
