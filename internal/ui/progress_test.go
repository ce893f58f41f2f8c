package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rc/internal/composition"
)

func TestApplyEventMarksPhaseDone(t *testing.T) {
	events := make(chan composition.PhaseEvent)
	m := NewProgressModel("checking", events).(*progressModel)

	m.applyEvent(composition.PhaseEvent{Phase: composition.PhaseEnumerate, Status: composition.StatusStarted})
	if m.items[0].status != "working" {
		t.Fatalf("expected enumerate phase to be working, got %q", m.items[0].status)
	}

	m.applyEvent(composition.PhaseEvent{Phase: composition.PhaseEnumerate, Status: composition.StatusDone, Detail: "3 instances"})
	if m.items[0].status != "done" || m.items[0].detail != "3 instances" {
		t.Fatalf("expected enumerate phase done with detail, got %+v", m.items[0])
	}
}

func TestViewRendersPhaseNames(t *testing.T) {
	events := make(chan composition.PhaseEvent)
	m := NewProgressModel("checking", events).(*progressModel)
	var _ tea.Model = m

	out := m.View()
	if !strings.Contains(out, "enumerate") {
		t.Fatalf("expected view to mention the enumerate phase, got %q", out)
	}
}
