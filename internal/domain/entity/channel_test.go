package entity

import (
	"errors"
	"testing"
)

func TestChannelConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		channel ChannelConfig
		wantErr bool
	}{
		{
			name:    "valid channel",
			channel: ChannelConfig{Name: "news-ame", Countries: []string{"Benin", "Morocco"}},
			wantErr: false,
		},
		{
			name:    "single country",
			channel: ChannelConfig{Name: "news-ctrl-eur", Countries: []string{"Austria"}},
			wantErr: false,
		},
		{
			name:    "empty name",
			channel: ChannelConfig{Name: "", Countries: []string{"Benin"}},
			wantErr: true,
		},
		{
			name:    "no countries",
			channel: ChannelConfig{Name: "news-ame", Countries: nil},
			wantErr: true,
		},
		{
			name:    "empty country entry",
			channel: ChannelConfig{Name: "news-ame", Countries: []string{"Benin", ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.channel.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
				if !errors.Is(err, ErrValidationFailed) {
					t.Errorf("Validate() error = %v, want match for ErrValidationFailed", err)
				}
			}
		})
	}
}

func TestRunOutcome_Sent(t *testing.T) {
	sent := RunOutcome{Channel: "news-ame", Status: StatusSent}
	if !sent.Sent() {
		t.Error("expected sent outcome to report Sent() = true")
	}

	failed := RunOutcome{Channel: "news-ame", Status: StatusFailed, Detail: "channel_not_found"}
	if failed.Sent() {
		t.Error("expected failed outcome to report Sent() = false")
	}
}
