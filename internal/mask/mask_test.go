package mask

import "testing"

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234567890", "12XXXXXX90"},
		{"123456", "12XX56"},
		{"1234", "1234"},
		{"12345", "12X45"},
		{"12", "XXXXXXXXXX"},
		{"123", "XXXXXXXXXX"},
		{"", "XXXXXXXXXX"},
		{"+4915712345678", "+4XXXXXXXXXX78"},
	}

	for _, tc := range cases {
		if got := Number(tc.in); got != tc.want {
			t.Errorf("Number(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNumberPreservesLength(t *testing.T) {
	for _, in := range []string{"1234", "5551234567", "123456789012345"} {
		if got := Number(in); len(got) != len(in) {
			t.Errorf("Number(%q) changed length: %d -> %d", in, len(in), len(got))
		}
	}
}
