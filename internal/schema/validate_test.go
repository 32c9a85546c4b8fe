package schema

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	var doc any
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return doc
}

func TestValidateManifest_Valid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "full",
			src: `
packages:
  taps: [homebrew/cask-fonts]
  formulae: [ripgrep, jq]
  casks: [kitty]
patches:
  - file: ~/.config/kitty/kitty.conf
    key: font_size
    value: "13"
login_items:
  - /Applications/kitty.app
`,
		},
		{
			name: "empty document",
			src:  `{}`,
		},
		{
			name: "packages only",
			src: `
packages:
  formulae: [ripgrep]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateManifest(decode(t, tt.src)); err != nil {
				t.Errorf("expected valid manifest, got error: %v", err)
			}
		})
	}
}

func TestValidateManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "unknown top-level field",
			src:  `fonts: [menlo]`,
		},
		{
			name: "patch missing value",
			src: `
patches:
  - file: ~/.config/kitty/kitty.conf
    key: font_size
`,
		},
		{
			name: "patch key with spaces",
			src: `
patches:
  - file: ~/.config/kitty/kitty.conf
    key: "font size"
    value: "13"
`,
		},
		{
			name: "empty formula name",
			src: `
packages:
  formulae: [""]
`,
		},
		{
			name: "unquoted numeric patch value",
			src: `
patches:
  - file: ~/.config/kitty/kitty.conf
    key: font_size
    value: 13
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateManifest(decode(t, tt.src)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
