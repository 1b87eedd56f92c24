package flow

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare 10 digits", in: "9876543210", want: "+919876543210"},
		{name: "10 digits with spaces", in: " 98765 43210 ", want: "+919876543210"},
		{name: "already international", in: "+14155552671", want: "+14155552671"},
		{name: "international with spaces", in: "+91 98765 43210", want: "+919876543210"},
		{name: "nine digits", in: "987654321", wantErr: true},
		{name: "eleven digits", in: "98765432101", wantErr: true},
		{name: "letters", in: "98765abcde", wantErr: true},
		{name: "plus only", in: "+", wantErr: true},
		{name: "plus with letters", in: "+91abc", wantErr: true},
		{name: "empty", in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in, "+91")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{125000, "125,000"},
		{1250000, "1,250,000"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Fatalf("groupDigits(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
