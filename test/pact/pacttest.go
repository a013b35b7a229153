//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "storefront-web"

	StateCatalogSeeded = "catalog products seeded"
	StateCustomerReady = "customer account with seeded catalog"
	StateOrderMissing  = "no order with the requested id"
)

const (
	CustomerID        = "6f1d2e6e-0a54-4cf6-9a6e-2b9f6f6a1c01"
	ExistingProductID = "9b2f3c21-5a7e-4d1b-8c5e-1f0d9a8b7c02"
	MissingOrderID    = "0f0e0d0c-0b0a-4a09-8807-060504030201"

	ExampleProductName  = "Pact Keyboard"
	ExampleProductPrice = int64(30000)
	ExampleProductStock = int64(50)
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
