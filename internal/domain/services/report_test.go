package services

import (
	"testing"

	"github.com/verhound/verhound/internal/domain/entities"
)

func TestFormatter_FormatOutcome(t *testing.T) {
	tests := []struct {
		name    string
		short   bool
		outcome *entities.StrategyOutcome
		want    string
	}{
		{
			name:  "short mode",
			short: true,
			outcome: &entities.StrategyOutcome{
				Method:  entities.MethodFlag,
				Version: "2.34.1",
				Detail:  "--version",
			},
			want: "git 2.34.1\n",
		},
		{
			name:  "long mode with flag",
			short: false,
			outcome: &entities.StrategyOutcome{
				Method:   entities.MethodFlag,
				Version:  "2.34.1",
				Detail:   "--version",
				Evidence: "git version 2.34.1",
			},
			want: "Version of git found using flag '--version':\n\ngit version 2.34.1\n",
		},
		{
			name:  "long mode with help flag",
			short: false,
			outcome: &entities.StrategyOutcome{
				Method:   entities.MethodHelp,
				Version:  "2.34.1",
				Detail:   "-V",
				Evidence: "git 2.34.1",
			},
			want: "Version of git found using help flag '-V':\n\ngit 2.34.1\n",
		},
		{
			name:  "long mode with package manager",
			short: false,
			outcome: &entities.StrategyOutcome{
				Method:   entities.MethodPackageManager,
				Version:  "2.34.1-4",
				Evidence: "dpkg reports version 2.34.1-4",
			},
			want: "Version of git found using package manager:\n\ndpkg reports version 2.34.1-4\n",
		},
		{
			name:  "long mode with strings",
			short: false,
			outcome: &entities.StrategyOutcome{
				Method:   entities.MethodBinaryStrings,
				Version:  "2.34.1",
				Evidence: "2.34.1",
			},
			want: "Version of git found using strings:\n\n2.34.1\n",
		},
		{
			name:  "long mode with no arguments",
			short: false,
			outcome: &entities.StrategyOutcome{
				Method:   entities.MethodNoArgs,
				Version:  "2.34.1",
				Evidence: "git version 2.34.1",
			},
			want: "Version of git found using no arguments:\n\ngit version 2.34.1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.short)
			if got := f.FormatOutcome("git", tt.outcome); got != tt.want {
				t.Errorf("FormatOutcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_FormatStatus(t *testing.T) {
	tests := []struct {
		name   string
		short  bool
		status entities.Status
		want   string
	}{
		{
			name:   "short not-found",
			short:  true,
			status: entities.StatusNotFound,
			want:   "frobnicate not-found\n",
		},
		{
			name:   "short no-permission",
			short:  true,
			status: entities.StatusNoPermission,
			want:   "frobnicate no-permission\n",
		},
		{
			name:   "short no-permission-user",
			short:  true,
			status: entities.StatusNoPermissionUser,
			want:   "frobnicate no-permission-user\n",
		},
		{
			name:   "short found-but-unparsed",
			short:  true,
			status: entities.StatusFoundButUnparsed,
			want:   "frobnicate found-but-unparsed\n",
		},
		{
			name:   "short undetermined",
			short:  true,
			status: entities.StatusUndetermined,
			want:   "frobnicate undetermined\n",
		},
		{
			name:   "long not-found",
			short:  false,
			status: entities.StatusNotFound,
			want:   "Command 'frobnicate' was not found on this system.\n",
		},
		{
			name:   "long undetermined",
			short:  false,
			status: entities.StatusUndetermined,
			want:   "The version of 'frobnicate' could not be determined.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.short)
			if got := f.FormatStatus("frobnicate", tt.status); got != tt.want {
				t.Errorf("FormatStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
