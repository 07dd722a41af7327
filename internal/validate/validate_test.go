package validate

import "testing"

func TestEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"a.b-c@sub.domain.com", true},
		{"jane@x.com", true},
		{"jane_doe@company.co.in", true},
		{"not-an-email", false},
		{"a@b", false},
		{"@domain.com", false},
		{"user@sub.domain.com", true},
		{"user@domain.", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"+919876543210", true},
		{"+15551234567", true},
		{"9876543210", true},
		{"123456789012345", true},
		{"12345", false},
		{"abcdefghij", false},
		{"+1234567890123456", false}, // 16 digits
		{"+91 9876543210", false},    // no spaces allowed
		{"", false},
	}

	for _, tc := range cases {
		if got := Phone(tc.in); got != tc.want {
			t.Errorf("Phone(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLocationName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"Austin", true},
		{"  Pune  ", true},
		{"NY", true},
		{"X", false},
		{"42", false},
		{"560001", false},
		{"  ", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := LocationName(tc.in); got != tc.want {
			t.Errorf("LocationName(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
