package errors

import "testing"

func TestExtractSymbol(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "qualified path keeps last segment",
			message: "mismatched types: expected `Foo::Bar`, found `i32`",
			want:    "Bar",
		},
		{
			name:    "plain identifier",
			message: "cannot find value `x` in this scope",
			want:    "x",
		},
		{
			name:    "first quoted span wins",
			message: "no method named `push` found for struct `Vec`",
			want:    "push",
		},
		{
			name:    "deep path",
			message: "use of undeclared crate or module `std::collections::hash_map`",
			want:    "hash_map",
		},
		{
			name:    "generic type keeps full capture without separator",
			message: "the trait bound `T: Clone` is not satisfied",
			want:    "T: Clone",
		},
		{
			name:    "trailing separator yields empty segment",
			message: "unresolved import `crate::`",
			want:    "",
		},
		{
			name:    "no backticks",
			message: "aborting due to 3 previous errors",
			want:    UnknownSymbol,
		},
		{
			name:    "single unmatched backtick",
			message: "unexpected ` in input",
			want:    UnknownSymbol,
		},
		{
			name:    "empty backtick pair shifts the match",
			message: "empty `` then `real`",
			want:    " then ",
		},
		{
			name:    "empty message",
			message: "",
			want:    UnknownSymbol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSymbol(tt.message); got != tt.want {
				t.Errorf("ExtractSymbol(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestSymbolFromIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		ident string
		want  string
	}{
		{"module path", "pallet_balances::tests::transfer_works", "transfer_works"},
		{"bare name", "it_works", "it_works"},
		{"file path without separator", "tests/integration.rs", "tests/integration.rs"},
		{"backticks take precedence", "test `a::b` in suite::c", "b"},
		{"surrounding whitespace", "  suite::case  ", "case"},
		{"empty", "", UnknownSymbol},
		{"whitespace only", "   ", UnknownSymbol},
		{"trailing separator", "suite::", UnknownSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SymbolFromIdentifier(tt.ident); got != tt.want {
				t.Errorf("SymbolFromIdentifier(%q) = %q, want %q", tt.ident, got, tt.want)
			}
		})
	}
}
