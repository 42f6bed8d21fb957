package scheduler

import (
	"testing"

	"github.com/sumitkarde03/druglaunchindia/aggregator"
	"github.com/sumitkarde03/druglaunchindia/data"
	"github.com/sumitkarde03/druglaunchindia/interfaces"
)

func TestRefreshPopulatesSnapshot(t *testing.T) {
	container := data.NewSnapshotContainer()
	s := NewSnapshotScheduler(container, aggregator.New(nil, false))

	if err := s.refresh(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(container.GetDrugs()) == 0 {
		t.Error("Expected refresh to populate the drug snapshot")
	}
	if len(container.GetCategories()) == 0 {
		t.Error("Expected refresh to populate categories")
	}
	if len(container.GetMarketStats()) == 0 {
		t.Error("Expected refresh to populate market stats")
	}
	if container.GetSource() != interfaces.SourceNotConfigured {
		t.Errorf("Expected not_configured provenance, got %s", container.GetSource())
	}
	if container.GetLastRefreshed().IsZero() {
		t.Error("Expected refresh to stamp lastRefreshed")
	}
	if container.IsRefreshing() {
		t.Error("Expected refresh flag to clear after completion")
	}
}

func TestRefreshSkipsWhenAlreadyRunning(t *testing.T) {
	container := data.NewSnapshotContainer()
	s := NewSnapshotScheduler(container, aggregator.New(nil, false))

	if !container.BeginRefresh() {
		t.Fatal("Expected to acquire the refresh flag")
	}
	defer container.EndRefresh()

	if err := s.refresh(); err != nil {
		t.Fatalf("Expected skip to be silent, got %v", err)
	}
	if len(container.GetDrugs()) != 0 {
		t.Error("Expected skipped refresh to leave the snapshot untouched")
	}
}

func TestStartAndStop(t *testing.T) {
	container := data.NewSnapshotContainer()
	s := NewSnapshotScheduler(container, aggregator.New(nil, false))

	if err := s.Start(); err != nil {
		t.Fatalf("Expected scheduler to start, got %v", err)
	}
	defer s.Stop()

	if len(container.GetDrugs()) == 0 {
		t.Error("Expected Start to perform the initial snapshot load")
	}
}
