package store

import "testing"

func TestValidatePreviewFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"plain wav", "bell.wav", false},
		{"upper case extension", "BELL.WAV", false},
		{"spaces", "my tone.wav", false},
		{"empty", "", true},
		{"mp3", "song.mp3", true},
		{"traversal", "../secret.wav", true},
		{"dots inside", "a..b.wav", true},
		{"path", "sub/bell.wav", true},
		{"no extension", "bell", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreviewFile(tt.file)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePreviewFile(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("error should be a ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateVolumeAndSnooze(t *testing.T) {
	if ValidateVolume(FieldVolume, 0) != nil || ValidateVolume(FieldVolume, 100) != nil {
		t.Error("bounds should be valid")
	}
	if ValidateVolume(FieldVolume, -1) == nil || ValidateVolume(FieldVolume, 101) == nil {
		t.Error("out of range volume should fail")
	}
	if ValidateSnooze(1) != nil || ValidateSnooze(20) != nil {
		t.Error("snooze bounds should be valid")
	}
	if ValidateSnooze(0) == nil || ValidateSnooze(21) == nil {
		t.Error("out of range snooze should fail")
	}
}

func TestValidateAlarm(t *testing.T) {
	tests := []struct {
		name    string
		rule    AlarmRule
		wantErr bool
	}{
		{"valid", AlarmRule{Day: 6, Hour: 23, Minute: 59, Sound: "x.wav"}, false},
		{"no sound", AlarmRule{Day: 0, Hour: 0, Minute: 0}, false},
		{"bad day", AlarmRule{Day: 7}, true},
		{"bad hour", AlarmRule{Hour: 24}, true},
		{"bad minute", AlarmRule{Minute: 60}, true},
		{"bad sound", AlarmRule{Sound: "x.mp3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateAlarm(tt.rule); (err != nil) != tt.wantErr {
				t.Errorf("ValidateAlarm() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLampAndSSID(t *testing.T) {
	if ValidateLamp(DefaultLamp) != nil {
		t.Error("default lamp should be valid")
	}
	if ValidateLamp(LampConfig{DayPercent: 101}) == nil || ValidateLamp(LampConfig{NightStart: 24}) == nil {
		t.Error("out of range lamp should fail")
	}
	if ValidateSSID("") == nil || ValidateSSID("123456789012345678901234567890123") == nil {
		t.Error("empty or long SSID should fail")
	}
	if ValidateSSID("HomeNet") != nil {
		t.Error("normal SSID should pass")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"07:30", 7, 30, false},
		{" 0:05 ", 0, 5, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"1230", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (h != tt.h || m != tt.m) {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.h, tt.m)
		}
	}
}
