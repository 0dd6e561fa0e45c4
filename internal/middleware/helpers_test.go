package middleware

import (
	"testing"

	"github.com/urlio/urlio-web/internal/apiclient"
)

func newTestClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(apiclient.Options{BaseURL: baseURL, DefaultLanguage: "tr"})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return client
}
