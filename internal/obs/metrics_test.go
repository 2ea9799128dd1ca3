package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                               "/",
		"/metrics":                       "/metrics",
		"/v1/documents/abc":              "/v1/documents/:id",
		"/v1/documents/abc/share":        "/v1/documents/:id/share",
		"/v1/documents/abc/analyze":      "/v1/documents/:id/analyze",
		"/v1/cases/c-1":                  "/v1/cases/:id",
		"/v1/moot/sessions/s-1/messages": "/v1/moot/sessions/:id/messages",
		"/v1/calendar/events/e-1":        "/v1/calendar/events/:id",
		"/v1/documents?limit=10":         "/v1/documents",
		"/v1/portal/invites":             "/v1/portal/invites",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
