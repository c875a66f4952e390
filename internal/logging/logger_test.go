package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedCategoryLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	L(CategoryGateway).Info("request sent")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != string(CategoryGateway) {
		t.Errorf("logger name = %q, want %q", entries[0].LoggerName, CategoryGateway)
	}
}

func TestInitializeWritesToDir(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(Options{Dir: dir}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer SetLogger(nil)

	L(CategoryWizard).Info("hello")
	Sync()
}
