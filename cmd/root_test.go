package cmd

import "testing"

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"scan": false, "deals": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Subcommand %q not registered", name)
		}
	}
}

func TestSetupLogger_FallbackToStderr(t *testing.T) {
	closeLog := setupLogger("")
	defer closeLog()
}
