package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "photo.png", want: "photo.png"},
		{name: "spaces trimmed", in: "  photo.png  ", want: "photo.png"},
		{name: "slashes replaced", in: "a/b\\c.png", want: "a_b_c.png"},
		{name: "traversal rejected", in: "../etc/passwd", wantErr: true},
		{name: "empty rejected", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFileName(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHashUserKeyStableAndSafe(t *testing.T) {
	a := HashUserKey("guest:abc")
	b := HashUserKey("guest:abc")
	if a != b {
		t.Fatal("hash is not stable")
	}
	if a == HashUserKey("guest:other") {
		t.Fatal("distinct users collide")
	}
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64 hex chars", len(a))
	}
}
