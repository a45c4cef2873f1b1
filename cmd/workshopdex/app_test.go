package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	perr "workshopdex/internal/platform/errors"
	kit "workshopdex/internal/platform/testkit"

	"github.com/urfave/cli/v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"workshopdex"}, args...))
	return out.String(), err
}

func TestQuery_PrintsPreviewWithoutCallingBackend(t *testing.T) {
	b := kit.NewBackend(t, nil)
	out, err := run(t, "--base-url", b.URL, "--compact", "query",
		"--app", "294100", "--language", "ja", "--tag", "Mod", "--tag", "QoL", "--limit", "0")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var pv struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(out), &pv); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if pv.Query != "language=Japanese&tags=Mod&tags=QoL&limit=0&app=294100" {
		t.Fatalf("query = %q", pv.Query)
	}
	if len(b.Hits()) != 0 {
		t.Fatal("query must not call the backend")
	}
}

func TestQuery_LanguageParamOverride(t *testing.T) {
	out, err := run(t, "--language-param", "languages", "--compact", "query", "--language", "English")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, `"query":"languages=English"`)
}

func TestQuery_RejectsUnknownLanguageParam(t *testing.T) {
	_, err := run(t, "--language-param", "lang", "query")
	if err == nil || exitCode(err) != exitUsage {
		t.Fatalf("err = %v", err)
	}
}

func TestQuery_InvalidInputIsUsageExit(t *testing.T) {
	cases := [][]string{
		{"query", "--order-by", "Newest"},
		{"query", "--limit", "500"},
		{"query", "--last-updated", "someday"},
		{"query", "--language", "Klingon"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, args...)
			if err == nil || exitCode(err) != exitUsage {
				t.Fatalf("err=%v code=%d", err, exitCode(err))
			}
		})
	}
}

func TestList_SuccessAndFailure(t *testing.T) {
	ok := kit.NewBackend(t, map[string]http.HandlerFunc{"/api/list": kit.JSON(200, `{"items":[]}`)})
	out, err := run(t, "--base-url", ok.URL, "--compact", "list", "--title", "foo")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != `{"ok":true,"payload":{"items":[]}}` {
		t.Fatalf("out = %q", out)
	}
	if q := ok.RawQuery("/api/list"); q != "title=foo" {
		t.Fatalf("backend query = %q", q)
	}

	bad := kit.NewBackend(t, map[string]http.HandlerFunc{"/api/list": kit.Text(500, "boom")})
	out, err = run(t, "--base-url", bad.URL, "--compact", "list")
	if err == nil || exitCode(err) != exitFailure {
		t.Fatalf("expected failure exit, got %v", err)
	}
	kit.MustContain(t, out, `"failure":{"status":500,"statusText":"Internal Server Error","body":"boom"}`)
}

func TestApp_PartialFailurePrintsBoth(t *testing.T) {
	b := kit.NewBackend(t, map[string]http.HandlerFunc{
		"/api/app/7": kit.Text(404, "nope"),
		"/api/list":  kit.JSON(200, `{"items":[1]}`),
	})
	out, err := run(t, "--base-url", b.URL, "--compact", "app", "--order-by", "Score", "7")
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	kit.MustContain(t, out, `"query":"order_by=Score&app=7"`)
	kit.MustContain(t, out, `"listing":{"ok":true,"payload":{"items":[1]}}`)
	kit.MustContain(t, out, `"app":{"error":{"code":9`)
}

func TestApp_RequiresID(t *testing.T) {
	_, err := run(t, "app")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) || exitCode(err) != exitUsage {
		t.Fatalf("err = %v", err)
	}
}

func TestItemAppsAdmin(t *testing.T) {
	b := kit.NewBackend(t, map[string]http.HandlerFunc{
		"/api/item/3":           kit.JSON(200, `{"id":3}`),
		"/api/apps":             kit.JSON(200, `[]`),
		"/api/admin/users":      kit.Text(403, "no"),
		"/api/admin/properties": kit.JSON(200, `{}`),
	})

	out, err := run(t, "--base-url", b.URL, "--compact", "item", "3")
	if err != nil || strings.TrimSpace(out) != `{"id":"3","item":{"id":3}}` {
		t.Fatalf("item: %q %v", out, err)
	}
	out, err = run(t, "--base-url", b.URL, "--compact", "apps")
	if err != nil || strings.TrimSpace(out) != `{"apps":[]}` {
		t.Fatalf("apps: %q %v", out, err)
	}
	out, err = run(t, "--base-url", b.URL, "--compact", "admin")
	if err != nil || strings.TrimSpace(out) != `{"users":{"available":false},"properties":{"data":{},"available":true}}` {
		t.Fatalf("admin: %q %v", out, err)
	}

	_, err = run(t, "--base-url", b.URL, "item", "4")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) || exitCode(err) != exitFailure {
		t.Fatalf("missing item: %v", err)
	}
}

func TestLanguagesAndVersion(t *testing.T) {
	out, err := run(t, "--compact", "languages")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, `"English"`)
	kit.MustContain(t, out, `"Portuguese"`)

	out, err = run(t, "version")
	if err != nil || !strings.HasPrefix(out, "workshopdex dev") {
		t.Fatalf("version: %q %v", out, err)
	}
}

func TestLanguages_In(t *testing.T) {
	out, err := run(t, "--compact", "languages", "--in", "de")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, `{"name":"Japanese","display":"Japanisch"}`)
	kit.MustContain(t, out, `{"name":"Unknown","display":"Unknown"}`)

	_, err = run(t, "languages", "--in", "not a tag")
	if exitCode(err) != exitUsage {
		t.Fatalf("err = %v", err)
	}
}

func TestPrettyByDefault(t *testing.T) {
	out, err := run(t, "query", "--title", "x")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, "\n  \"query\": \"title=x\"")
}

func TestExitCode(t *testing.T) {
	if exitCode(cli.Exit("x", 7)) != 7 {
		t.Fatal("ExitCoder code not kept")
	}
	if exitCode(perr.New(perr.ErrorCodeUnavailable, "down")) != exitFailure {
		t.Fatal("transport errors exit 1")
	}
}

func TestErrorMessage(t *testing.T) {
	down := errorMessage(perr.New(perr.ErrorCodeUnavailable, "workshop /api/apps unreachable"))
	if down != "Error: workshop /api/apps unreachable (the workshop backend may be down or busy, try again later)" {
		t.Fatalf("unavailable message = %q", down)
	}
	if got := errorMessage(perr.NotFoundf("item 4 not found")); got != "Error: item 4 not found" {
		t.Fatalf("not found message = %q", got)
	}
}
