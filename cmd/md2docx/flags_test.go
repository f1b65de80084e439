package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantArgs []string
		check    func(t *testing.T, f *cliFlags)
	}{
		{
			name:     "defaults",
			args:     []string{"reports/"},
			wantArgs: []string{"reports/"},
			check: func(t *testing.T, f *cliFlags) {
				if f.workers != 0 || f.quiet || f.verbose || f.config != "" {
					t.Errorf("defaults = %+v", f)
				}
				if f.margin != marginSentinel {
					t.Errorf("margin = %g, want sentinel", f.margin)
				}
			},
		},
		{
			name:     "short flags",
			args:     []string{"-c", "prod", "-o", "out/", "-w", "4", "-q", "report.md"},
			wantArgs: []string{"report.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.config != "prod" || f.output != "out/" || f.workers != 4 || !f.quiet {
					t.Errorf("parsed = %+v", f)
				}
			},
		},
		{
			name:     "long flags",
			args:     []string{"--margin", "2.5", "--font", "Arial", "--size", "11", "--verbose"},
			wantArgs: []string{},
			check: func(t *testing.T, f *cliFlags) {
				if f.margin != 2.5 || f.font != "Arial" || f.size != 11 || !f.verbose {
					t.Errorf("parsed = %+v", f)
				}
			},
		},
		{
			name:     "zero margin is explicit",
			args:     []string{"--margin", "0"},
			wantArgs: []string{},
			check: func(t *testing.T, f *cliFlags) {
				if f.margin != 0 {
					t.Errorf("margin = %g, want 0", f.margin)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, args, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("positional args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d = %q, want %q", i, args[i], tt.wantArgs[i])
				}
			}
			tt.check(t, f)
		})
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"--nonsense"}); err == nil {
		t.Error("parseFlags() with unknown flag: expected error, got nil")
	}
}
