package id3v2

import "testing"

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		text string
		want Timestamp
	}{
		{"2004", Timestamp{2004, -1, -1, -1, -1, -1}},
		{"2004-03", Timestamp{2004, 3, -1, -1, -1, -1}},
		{"2004-03-06", Timestamp{2004, 3, 6, -1, -1, -1}},
		{"2004-03-06T12:27", Timestamp{2004, 3, 6, 12, 27, -1}},
		{"2004-03-06T12:27:00", Timestamp{2004, 3, 6, 12, 27, 0}},
		{"2004-03-06 12:27:00", Timestamp{2004, 3, 6, 12, 27, 0}},
		{"2004/03/06", Timestamp{2004, 3, 6, -1, -1, -1}},
		{"", Timestamp{-1, -1, -1, -1, -1, -1}},
		{"not a year", Timestamp{-1, -1, -1, -1, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseTimestamp(tt.text); got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTimestampString(t *testing.T) {
	tests := []struct {
		ts   Timestamp
		want string
	}{
		{Timestamp{-1, -1, -1, -1, -1, -1}, ""},
		{Timestamp{2004, -1, -1, -1, -1, -1}, "2004"},
		{Timestamp{2004, 3, -1, -1, -1, -1}, "2004-03"},
		{Timestamp{2004, 3, 6, -1, -1, -1}, "2004-03-06"},
		{Timestamp{2004, 3, 6, 12, 27, 0}, "2004-03-06 12:27:00"},
		// An absent component hides everything after it.
		{Timestamp{2004, -1, 6, 12, 27, 0}, "2004"},
	}
	for _, tt := range tests {
		if got := tt.ts.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.ts, got, tt.want)
		}
	}
}

func TestTimestampWire(t *testing.T) {
	ts := Timestamp{2004, 3, 6, 12, 27, 0}
	if got := ts.wire(); got != "2004-03-06T12:27:00" {
		t.Errorf("wire() = %q, want 2004-03-06T12:27:00", got)
	}
}

func TestTimestampRoundtrip(t *testing.T) {
	for _, text := range []string{"2004", "2004-03-06", "2004-03-06T12:27:00"} {
		ts := ParseTimestamp(text)
		if got := ts.wire(); got != text {
			t.Errorf("roundtrip of %q came back as %q", text, got)
		}
	}
}

func TestTimestampEqual(t *testing.T) {
	a := ParseTimestamp("2004-03-06")
	b := Timestamp{Year: 2004, Month: 3, Day: 6, Hour: -1, Minute: -1, Second: -1}
	if !a.Equal(b) {
		t.Errorf("%+v and %+v should compare equal", a, b)
	}
	if a.Equal(ParseTimestamp("2004")) {
		t.Error("timestamps of different precision should not compare equal")
	}
}
