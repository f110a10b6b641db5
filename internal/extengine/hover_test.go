package extengine

import "testing"

func TestSelectPayload(t *testing.T) {
	tests := []struct {
		name     string
		payloads []HoverPayload
		want     string
		ok       bool
	}{
		{
			name: "typescript fence preferred",
			payloads: []HoverPayload{
				{Content: "documentation text"},
				{Content: "```typescript\n(property) UserComponent.user: User\n```", IsMarkdown: true},
			},
			want: "```typescript\n(property) UserComponent.user: User\n```",
			ok:   true,
		},
		{
			name: "property marker preferred",
			payloads: []HoverPayload{
				{Content: "some docs"},
				{Content: "(property) UserComponent.count: number"},
			},
			want: "(property) UserComponent.count: number",
			ok:   true,
		},
		{
			name: "any fence beats plain text",
			payloads: []HoverPayload{
				{Content: "plain"},
				{Content: "```\nuser: User\n```"},
			},
			want: "```\nuser: User\n```",
			ok:   true,
		},
		{
			name:     "first payload as last resort",
			payloads: []HoverPayload{{Content: "alpha"}, {Content: "beta"}},
			want:     "alpha",
			ok:       true,
		},
		{
			name:     "empty response",
			payloads: nil,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectPayload(tt.payloads)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Content != tt.want {
				t.Fatalf("got %q, want %q", got.Content, tt.want)
			}
		})
	}
}

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name    string
		payload HoverPayload
		want    string
	}{
		{
			name:    "fenced block",
			payload: HoverPayload{Content: "```typescript\n(property) C.user: User\n```"},
			want:    "(property) C.user: User",
		},
		{
			name:    "fence without language",
			payload: HoverPayload{Content: "```\nuser: User\n```", IsMarkdown: true},
			want:    "user: User",
		},
		{
			name:    "inline code in markdown",
			payload: HoverPayload{Content: "the type is `User` here", IsMarkdown: true},
			want:    "User",
		},
		{
			name:    "raw fallback",
			payload: HoverPayload{Content: "  user: User  "},
			want:    "user: User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCodeBlock(tt.payload); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSignatureType(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      string
	}{
		{"property signature", "(property) UserComponent.user: User", "User"},
		{"property with union", "(property) C.value: string | null", "string | null"},
		{"method first param", "(method) C.onSave(event: MouseEvent): void", "MouseEvent"},
		{"method multiple params", "(method) C.update(id: number, user: User): void", "number"},
		{"parameterless method", "(method) C.refresh(): void", "void"},
		{"bare signature", "user: User", "User"},
		{"bare with generic", "items: Array<string>", "Array<string>"},
		{"unparsable", "just some documentation", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSignatureType(tt.signature); got != tt.want {
				t.Fatalf("ParseSignatureType(%q) = %q, want %q", tt.signature, got, tt.want)
			}
		})
	}
}
