package target

import "testing"

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"linux", Linux},
		{"Linux", Linux},
		{"darwin", Darwin},
		{"macos", Darwin},
		{"windows", Windows},
		{"mingw32", Windows},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if err != nil {
				t.Fatalf("ParsePlatform(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParsePlatform("solaris"); err == nil {
		t.Error("ParsePlatform(solaris) should fail")
	}
}

func TestParseProfile(t *testing.T) {
	if got, err := ParseProfile("release"); err != nil || got != Release {
		t.Errorf("ParseProfile(release) = %v, %v", got, err)
	}
	if got, err := ParseProfile("Debug"); err != nil || got != Debug {
		t.Errorf("ParseProfile(Debug) = %v, %v", got, err)
	}
	if _, err := ParseProfile("fast"); err == nil {
		t.Error("ParseProfile(fast) should fail")
	}
}

func TestPlatformRoundTrip(t *testing.T) {
	for _, p := range []Platform{Linux, Darwin, Windows} {
		got, err := ParsePlatform(p.String())
		if err != nil {
			t.Fatalf("ParsePlatform(%v.String()): %v", p, err)
		}
		if got != p {
			t.Errorf("round trip %v = %v", p, got)
		}
	}
}

func TestHost(t *testing.T) {
	platform, arch := Host()
	if arch == "" {
		t.Error("Host() returned empty architecture")
	}
	if s := platform.String(); s != "linux" && s != "darwin" && s != "windows" {
		t.Errorf("Host() platform = %q", s)
	}
}
