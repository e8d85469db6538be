package main

import "testing"

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name       string
		once       bool
		daemon     bool
		wantDaemon bool
		wantErr    bool
	}{
		{name: "no flags defaults to daemon", wantDaemon: true},
		{name: "explicit daemon", daemon: true, wantDaemon: true},
		{name: "once selects one-shot", once: true, wantDaemon: false},
		{name: "both flags rejected", once: true, daemon: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daemonMode, err := selectMode(tt.once, tt.daemon)

			if tt.wantErr {
				if err == nil {
					t.Fatal("selectMode() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("selectMode() error = %v", err)
			}
			if daemonMode != tt.wantDaemon {
				t.Errorf("selectMode(once=%v, daemon=%v) = %v, want %v",
					tt.once, tt.daemon, daemonMode, tt.wantDaemon)
			}
		})
	}
}
