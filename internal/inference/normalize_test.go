package inference

import "testing"

func TestNormalizeTypeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain type", "User", "User"},
		{"trims whitespace", "  string  ", "string"},
		{"strips import prefix", `import("/src/app/user.model").User`, "User"},
		{"strips import prefix in union", `import("/a").User | null`, "User | null"},
		{"boolean literal union", "false | true", "boolean"},
		{"boolean literal union reversed", "true | false", "boolean"},
		{"nullable primitive collapses", "string | null | undefined", "string | null"},
		{"nullable object union kept", "User | null | undefined", "User | null | undefined"},
		{"plain union kept", "string | number", "string | number"},
		{"union spacing normalized", "string|number", "string | number"},
		{"generic with pipe untouched", "Map<string, 'a' | 'b'>", "Map<string, 'a' | 'b'>"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTypeText(tt.in); got != tt.want {
				t.Fatalf("NormalizeTypeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
