package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("annotations built") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("annotation skipped") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("annotation skipped") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("unknown axis") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered chart.yaml", "formats", "svg,png")

	out := buf.String()
	for _, want := range []string{"Rendered chart.yaml", "formats=svg,png", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
}

func TestRootAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"themes"})

	var got *log.Logger
	themes, _, _ := root.Find([]string{"themes"})
	run := themes.RunE
	themes.RunE = func(cmd *cobra.Command, args []string) error {
		got = loggerFromContext(cmd.Context())
		return run(cmd, args)
	}
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("themes: %v", err)
	}
	if got != c.Logger {
		t.Error("command context does not carry the CLI logger")
	}
}
