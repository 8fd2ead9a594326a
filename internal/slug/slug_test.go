package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Wireless Mouse", "wireless-mouse"},
		{"symbols collapse", "Café & Crème!!", "caf-cr-me"},
		{"leading trailing", "  --Hello World--  ", "hello-world"},
		{"digits kept", "USB-C 2.0 Hub", "usb-c-2-0-hub"},
		{"already slug", "usb-c-hub", "usb-c-hub"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
		{"uppercase", "SKU-100", "sku-100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Wireless Mouse", "Café & Crème", "a--b", "Ünïcode Nâme", "100% cotton",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", in)
	}
}

func TestMakeAlphabet(t *testing.T) {
	for _, in := range []string{"Hello, World!", "a b\tc", "Ça va?"} {
		for _, r := range Make(in) {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in slug of %q", r, in)
		}
	}
}
