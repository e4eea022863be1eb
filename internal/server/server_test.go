package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcosnunesmbs/portfolio/internal/model"
)

const testData = `
certifications:
  - {name: ITIL, imgSrc: itil.png, alt: ITIL Badge}
skills:
  - {name: Go, icon: fa-golang, color: bg-sky-600}
  - {name: Rust, icon: fa-rust, color: bg-orange-600}
projects:
  - {name: One, url: "https://one.example", imgSrc: one.png, alt: One, description: first}
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func newTestSite(t *testing.T) (*Site, string) {
	t.Helper()
	dataPath := filepath.Join(t.TempDir(), "portfolio.yaml")
	writeFile(t, dataPath, testData)

	site, err := NewSite(dataPath, "", WithLogger(discardLogger()), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("failed to create site: %v", err)
	}
	return site, dataPath
}

func TestNewSite(t *testing.T) {
	t.Parallel()

	t.Run("embedded defaults", func(t *testing.T) {
		t.Parallel()
		site, err := NewSite("", "", WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := site.Current()
		if p.Result.Total() != p.Portfolio.Len() || p.Result.Total() == 0 {
			t.Errorf("unexpected render result: %+v", p.Result)
		}
		if site.Reloads() != 1 {
			t.Errorf("Reloads() = %d", site.Reloads())
		}
	})

	t.Run("missing data file", func(t *testing.T) {
		t.Parallel()
		_, err := NewSite(filepath.Join(t.TempDir(), "nope.yaml"), "", WithLogger(discardLogger()))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestSiteReload(t *testing.T) {
	t.Parallel()

	site, dataPath := newTestSite(t)
	first := site.Current()

	writeFile(t, dataPath, "skills:\n  - {name: Zig, icon: fa-zig, color: bg-amber-600}\n")
	if err := site.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := site.Current().Result.Skills; got != 1 {
		t.Errorf("expected 1 skill after reload, got %d", got)
	}
	if first.Result.Skills != 2 {
		t.Error("previous snapshot was mutated")
	}

	writeFile(t, dataPath, "skills: [")
	if err := site.Reload(); err == nil {
		t.Fatal("expected error for malformed data")
	}
	if !strings.Contains(string(site.Current().HTML), "Zig") {
		t.Error("failed reload must keep the previous page")
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	site, _ := newTestSite(t)
	assets := t.TempDir()
	writeFile(t, filepath.Join(assets, "style.css"), "body{}")

	srv := httptest.NewServer(NewRouter(site, assets, discardLogger()))
	t.Cleanup(srv.Close)

	get := func(t *testing.T, path string) (*http.Response, string) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return resp, string(body)
	}

	t.Run("page", func(t *testing.T) {
		t.Parallel()
		resp, body := get(t, "/")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
			t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
		}
		for _, want := range []string{"fa-golang", "fa-rust", `alt="ITIL Badge"`, ">One</h3>"} {
			if !strings.Contains(body, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("assets", func(t *testing.T) {
		t.Parallel()
		resp, body := get(t, "/assets/style.css")
		if resp.StatusCode != http.StatusOK || body != "body{}" {
			t.Errorf("status = %d, body = %q", resp.StatusCode, body)
		}
	})

	t.Run("api portfolio", func(t *testing.T) {
		t.Parallel()
		resp, body := get(t, "/api/portfolio")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var p model.Portfolio
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(p.Skills) != 2 || p.Skills[1].Name != "Rust" {
			t.Errorf("unexpected skills: %+v", p.Skills)
		}
	})

	t.Run("healthz", func(t *testing.T) {
		t.Parallel()
		resp, body := get(t, "/healthz")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var h struct {
			Status  string `json:"status"`
			Entries int    `json:"entries"`
		}
		if err := json.Unmarshal([]byte(body), &h); err != nil {
			t.Fatal(err)
		}
		if h.Status != "ok" || h.Entries != 4 {
			t.Errorf("unexpected health: %+v", h)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		resp, _ := get(t, "/nope")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})
}

func TestRouterWithoutAssets(t *testing.T) {
	t.Parallel()

	site, _ := newTestSite(t)
	rec := httptest.NewRecorder()
	NewRouter(site, "", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/style.css", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestWatch(t *testing.T) {
	t.Parallel()

	t.Run("nothing to watch", func(t *testing.T) {
		t.Parallel()
		site, err := NewSite("", "", WithLogger(discardLogger()))
		if err != nil {
			t.Fatal(err)
		}
		if err := site.Watch(context.Background()); !errors.Is(err, ErrNothingToWatch) {
			t.Errorf("expected ErrNothingToWatch, got %v", err)
		}
	})

	t.Run("reloads on write", func(t *testing.T) {
		t.Parallel()
		site, dataPath := newTestSite(t)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- site.Watch(ctx) }()
		t.Cleanup(func() {
			cancel()
			<-done
		})

		deadline := time.Now().Add(5 * time.Second)
		for site.Reloads() < 2 {
			if time.Now().After(deadline) {
				t.Fatal("page was not reloaded")
			}
			// Rewrite until the watcher has been registered and picks it up.
			writeFile(t, dataPath, "skills:\n  - {name: Zig, icon: fa-zig, color: bg-amber-600}\n")
			time.Sleep(50 * time.Millisecond)
		}
		if got := site.Current().Result.Skills; got != 1 {
			t.Errorf("expected 1 skill after reload, got %d", got)
		}
	})
}

func TestListenAndServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), time.Second, discardLogger())
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
