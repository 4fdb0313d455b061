package orders

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "shipped", "delivered"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "Pending", "cancelled", "exploded"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q): err = %v, want ErrInvalidStatus", s, err)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	e := &InsufficientStockError{ProductName: "Flash Start FS1440", Available: 4, Requested: 6}
	want := "insufficient stock for Flash Start FS1440: available 4, requested 6"
	if e.Error() != want {
		t.Errorf("got %q, want %q", e.Error(), want)
	}

	inv := &InvalidStateError{Status: StatusShipped}
	if got := inv.Error(); got != "cannot cancel shipped order: only pending orders can be cancelled" {
		t.Errorf("unexpected message %q", got)
	}
}
