package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependencies_InMemory(t *testing.T) {
	logger := log.WithField("test", "dependencies")

	deps, err := NewDependencies(context.Background(), DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Products == nil {
		t.Error("Products should not be nil")
	}

	if deps.Inventory == nil {
		t.Error("Inventory should not be nil")
	}

	if deps.Categories == nil {
		t.Error("Categories should not be nil")
	}

	if deps.Cache == nil {
		t.Error("Cache should not be nil")
	}

	if deps.Locks == nil {
		t.Error("Locks should not be nil")
	}

	if deps.Producer != nil {
		t.Error("Producer should be nil when no brokers are configured")
	}

	if deps.Logger == nil {
		t.Error("Logger should not be nil")
	}
}

func TestNewDependencies_WithNilLogger(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Logger == nil {
		t.Error("Logger should be initialized even when nil is passed")
	}
}

func TestNewDependencies_LoggerField(t *testing.T) {
	customLogger := log.WithField("custom", "value")

	deps, err := NewDependencies(context.Background(), DefaultConfig(), customLogger)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Logger != customLogger {
		t.Error("Logger should be the same instance as passed")
	}
}

func TestNewDependencies_IndependentInstances(t *testing.T) {
	deps1, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps1.Close()

	deps2, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps2.Close()

	if deps1 == deps2 {
		t.Error("NewDependencies should create independent instances")
	}

	if deps1.Products == deps2.Products {
		t.Error("product repositories should be independent")
	}
}

func TestDependencies_CloseWithoutExternalSystems(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}

	// Без внешних систем Close не должен паниковать.
	deps.Close()
}
