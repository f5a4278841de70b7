package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/input"
)

func TestFrontend_RunUntilQuit(t *testing.T) {
	in := &stubInput{pending: []input.Event{{Key: input.KeyQuit, At: time.Now()}}}
	ctrl := newController(t, in)
	driver := NewDriver(ctrl, WithInterval(time.Millisecond))

	var out bytes.Buffer
	fe := NewFrontend(&mockInjector{}, nil, zap.NewNop(),
		tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer(), tea.WithoutSignalHandler())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fe.Run(ctx, driver); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ctrl.Done() {
		t.Error("controller should have quit")
	}
}

func TestFrontend_SuspendWithoutProgram(t *testing.T) {
	fe := NewFrontend(nil, nil, nil)
	if err := fe.Suspend(); err != nil {
		t.Errorf("Suspend() error = %v", err)
	}
	if err := fe.Resume(); err != nil {
		t.Errorf("Resume() error = %v", err)
	}
}
