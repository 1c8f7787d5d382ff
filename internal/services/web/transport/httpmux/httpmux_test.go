package httpmux

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestMountAppRedirectsBareRootToLanding(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountApp(rootMux, "/app/activities", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("app"))
	}))

	rootRec := httptest.NewRecorder()
	rootMux.ServeHTTP(rootRec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rootRec.Code != http.StatusSeeOther || rootRec.Header().Get("Location") != "/app/activities" {
		t.Fatalf("/ = %d %q", rootRec.Code, rootRec.Header().Get("Location"))
	}

	appRec := httptest.NewRecorder()
	rootMux.ServeHTTP(appRec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if body := appRec.Body.String(); body != "app" {
		t.Fatalf("/login body = %q, want %q", body, "app")
	}
}

func TestMountStaticServesStaticPrefix(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountStatic(rootMux, fstest.MapFS{
		"app.js":    &fstest.MapFile{Data: []byte("console.log('ok');")},
		"theme.css": &fstest.MapFile{Data: []byte("body{}")},
	})

	tests := []struct {
		path        string
		contentType string
	}{
		{path: "/static/app.js", contentType: "text/javascript; charset=utf-8"},
		{path: "/static/theme.css", contentType: "text/css; charset=utf-8"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		rootMux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want %d", tc.path, rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("Content-Type"); got != tc.contentType {
			t.Fatalf("%s Content-Type = %q, want %q", tc.path, got, tc.contentType)
		}
		if rec.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s missing Cache-Control", tc.path)
		}
	}
}

func TestMountOperationalReportsHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		healthy func() bool
		want    int
	}{
		{name: "no probe", want: http.StatusOK},
		{name: "healthy", healthy: func() bool { return true }, want: http.StatusOK},
		{name: "degraded", healthy: func() bool { return false }, want: http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rootMux := http.NewServeMux()
			MountOperational(rootMux, tc.healthy, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("# metrics"))
			}))
			rec := httptest.NewRecorder()
			rootMux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))
			if rec.Code != tc.want {
				t.Fatalf("/up status = %d, want %d", rec.Code, tc.want)
			}
			metrics := httptest.NewRecorder()
			rootMux.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			if metrics.Body.String() != "# metrics" {
				t.Fatalf("/metrics body = %q", metrics.Body.String())
			}
		})
	}
}

func TestMountNoopOnNilInputs(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountStatic(nil, fstest.MapFS{})
	MountStatic(rootMux, fs.FS(nil))
	MountOperational(nil, nil, nil)
	MountApp(nil, "/", nil)
}
