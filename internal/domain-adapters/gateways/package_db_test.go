package gateways

import "testing"

func TestParseDpkgOwner(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "plain owner",
			out:  "coreutils: /usr/bin/ls\n",
			want: "coreutils",
		},
		{
			name: "architecture qualified owner",
			out:  "libc6:amd64: /lib/x86_64-linux-gnu/libc.so.6\n",
			want: "libc6",
		},
		{
			name: "only first line is considered",
			out:  "git: /usr/bin/git\nother: /usr/bin/other\n",
			want: "git",
		},
		{
			name:    "diversion output",
			out:     "diversion by dash from: /bin/sh\n",
			wantErr: true,
		},
		{
			name:    "empty output",
			out:     "\n",
			wantErr: true,
		},
		{
			name:    "no separator",
			out:     "garbage without colon-space\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDpkgOwner(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDpkgOwner() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseDpkgOwner() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripEpoch(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1:2.34.1-1ubuntu1", "2.34.1-1ubuntu1"},
		{"2.34.1-1", "2.34.1-1"},
		{"12:0.5", "0.5"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripEpoch(tt.version); got != tt.want {
			t.Errorf("stripEpoch(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
