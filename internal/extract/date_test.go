package extract

import "testing"

func TestParseMemoDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15 de março de 2024", "2024-03-15"},
		{"1 de janeiro de 2023", "2023-01-01"},
		{"1º de maio de 2024", "2024-05-01"},
		{"31 de dezembro de 2022", "2022-12-31"},
		{"7 de agosto de 2024", "2024-08-07"},
		{"15 de Março de 2024", "2024-03-15"}, // month case-insensitive
	}
	for _, tc := range cases {
		got := ParseMemoDate(tc.in)
		if v, ok := got.Value(); !ok || v != tc.want {
			t.Fatalf("ParseMemoDate(%q) = %q (available=%t), want %q", tc.in, got.String(), ok, tc.want)
		}
	}
}

func TestParseMemoDateUnparseable(t *testing.T) {
	bad := []string{
		"",
		"S/A",
		"março de 2024",
		"15 de marca de 2024", // unknown month
		"15 of march of 2024",
		"40 de março de 2024", // impossible day
		"15 de março de 24",   // two-digit year
		"15-03-2024",
	}
	for _, in := range bad {
		if got := ParseMemoDate(in); got.Available() {
			t.Fatalf("ParseMemoDate(%q) = %q, want unavailable", in, got.String())
		}
	}
}
