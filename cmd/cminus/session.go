package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cminus/internal/diagfmt"
	"cminus/internal/prof"
	"cminus/internal/project"
	"cminus/internal/trace"
)

// session is the resolved configuration of one CLI run: cminus.toml merged
// with the flags the user set explicitly, plus the tracer built from it.
type session struct {
	cfg      project.Config
	manifest *project.Manifest
	quiet    bool
	timings  bool
	color    bool
	tracer   trace.Tracer
	profile  *prof.Session
}

// load reads the manifest (unless disabled) and applies explicitly set flags
// on top of it. Flags left at their defaults never override the manifest.
func (s *session) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	s.cfg = project.DefaultConfig()

	noConfig, err := flags.GetBool("no-config")
	if err != nil {
		return fmt.Errorf("failed to get no-config flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if !noConfig {
		var m *project.Manifest
		if configPath != "" {
			m, err = project.LoadManifestFile(configPath)
		} else {
			m, _, err = project.LoadManifest(".")
		}
		if err != nil {
			return err
		}
		if m != nil {
			s.manifest = m
			s.cfg = m.Config
		}
	}

	overrides := []struct {
		flag string
		set  func() error
	}{
		{"max-diagnostics", func() (err error) { s.cfg.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); return }},
		{"color", func() (err error) { s.cfg.Output.Color, err = flags.GetString("color"); return }},
		{"trace", func() (err error) { s.cfg.Trace.Output, err = flags.GetString("trace"); return }},
		{"trace-level", func() (err error) { s.cfg.Trace.Level, err = flags.GetString("trace-level"); return }},
		{"trace-format", func() (err error) { s.cfg.Trace.Format, err = flags.GetString("trace-format"); return }},
		// check-only flags; Lookup is nil for other commands
		{"format", func() (err error) { s.cfg.Check.Format, err = flags.GetString("format"); return }},
		{"jobs", func() (err error) { s.cfg.Check.Jobs, err = flags.GetInt("jobs"); return }},
		{"fullpath", func() (err error) { s.cfg.Output.FullPath, err = flags.GetBool("fullpath"); return }},
		{"cache", func() (err error) { s.cfg.Check.Cache, err = flags.GetBool("cache"); return }},
		{"sort", func() (err error) { s.cfg.Check.Sort, err = flags.GetBool("sort"); return }},
	}
	for _, o := range overrides {
		if f := flags.Lookup(o.flag); f == nil || !f.Changed {
			continue
		}
		if err := o.set(); err != nil {
			return fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
	}
	// --trace alone means "trace the phases"
	if f := flags.Lookup("trace"); f != nil && f.Changed && !flags.Changed("trace-level") && s.cfg.Trace.Level == "off" {
		s.cfg.Trace.Level = "phase"
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	switch strings.ToLower(s.cfg.Output.Color) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(cmd.OutOrStdout())
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.cfg.Output.Color)
	}
	return nil
}

func (s *session) pathMode() diagfmt.PathMode {
	if s.cfg.Output.FullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// setupTracing builds the tracer from the resolved [trace] settings and the
// storage flags and attaches it to the command context.
func (s *session) setupTracing(cmd *cobra.Command) error {
	s.tracer = trace.Nop
	level, err := trace.ParseLevel(s.cfg.Trace.Level)
	if err != nil {
		return err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	flags := cmd.Flags()
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	// error level only keeps a ring to dump on faults unless asked otherwise
	if level == trace.LevelError && !flags.Changed("trace-mode") {
		modeStr = "ring"
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	format, err := trace.ParseFormat(s.cfg.Trace.Format)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: s.cfg.Trace.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

func (s *session) setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	s.profile, err = prof.Start(opts)
	return err
}

// dumpTrace replays buffered trace events, if the tracer keeps any.
func (s *session) dumpTrace(w io.Writer) {
	d, ok := s.tracer.(trace.Dumper)
	if !ok {
		return
	}
	fmt.Fprintln(w, "== trace ==")
	if err := d.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func (s *session) close(stderr io.Writer) {
	if err := s.profile.Stop(); err != nil {
		fmt.Fprintf(stderr, "profile: %v\n", err)
	}
	s.profile = nil
	if s.tracer == nil {
		return
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
	s.tracer = nil
}
