package content

import (
	"context"
	"os"
	"testing"
)

// Integration test against the live Vertex AI API. Requires GCP
// credentials and a project with the Gemini API enabled.
func TestGeneratePool_Integration(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, projectID, os.Getenv("GCP_REGION"), "")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer func() { _ = client.Close() }()

	subject, err := client.DetectSubject(ctx, "multiplication tables up to 10", nil, "")
	if err != nil {
		t.Fatalf("DetectSubject() error = %v", err)
	}
	if subject.Name == "" {
		t.Error("DetectSubject() returned empty subject name")
	}

	items, err := client.GeneratePool(ctx, PoolRequest{
		Subject:  subject.Name,
		Topic:    "multiplication tables up to 10",
		PoolSize: 12,
	})
	if err != nil {
		t.Fatalf("GeneratePool() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("GeneratePool() returned no items")
	}

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Problem == "" || it.Answer == "" {
			t.Errorf("item %d has blank fields: %+v", it.ID, it)
		}
		if seen[it.Answer] {
			t.Errorf("duplicate answer %q survived parsing", it.Answer)
		}
		seen[it.Answer] = true
	}
}
