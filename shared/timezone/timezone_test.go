package timezone_test

import (
	"ecodash/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	if now.Location() == nil {
		t.Error("Now() returned a time without a location")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	if !timezone.ToAppTime(testTime).Equal(testTime) {
		t.Error("ToAppTime() changed the instant")
	}
}

func TestParseInstant(t *testing.T) {
	want := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "zulu", value: "2030-01-01T10:00:00Z", want: want},
		{name: "numeric offset", value: "2030-01-01T17:00:00+07:00", want: want},
		{name: "fractional seconds", value: "2030-01-01T10:00:00.000Z", want: want},
		{name: "space separator", value: "2030-01-01 10:00:00+00:00", want: want},
		{name: "compact offset", value: "2030-01-01T05:00:00-0500", want: want},
		{name: "naive", value: "2030-01-01T10:00:00", wantErr: true},
		{name: "date only", value: "2030-01-01", wantErr: true},
		{name: "garbage", value: "not-a-date", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseInstant(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.value, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}

			if got.Location() != time.UTC {
				t.Errorf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty", zone: "", want: "UTC"},
		{name: "unknown", zone: "Mars/Olympus_Mons", want: "UTC"},
		{name: "iana", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.Load(tt.zone).String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
