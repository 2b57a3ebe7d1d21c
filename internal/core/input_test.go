package core

import "testing"

func TestInputFramePressClear(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Press(KeyLeft)
	f.Press(KeyLeft)
	f.Press(KeyRotateRight)

	if !f.Has(KeyLeft) || !f.Has(KeyRotateRight) {
		t.Errorf("Has() missing pressed keys: %v", f.Keys)
	}
	if f.Has(KeyDown) {
		t.Error("Has(KeyDown) = true, expected false")
	}
	if len(f.Keys) != 2 {
		t.Errorf("repeated presses should coalesce, got %d keys", len(f.Keys))
	}

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear() should release every key")
	}
	if !clone.Has(KeyLeft) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(KeyConfirm) {
		t.Error("zero frame should have no keys")
	}
	f.Press(KeyConfirm)
	if !f.Has(KeyConfirm) {
		t.Error("Press() on zero frame should allocate")
	}
}

func TestKeyStringPanicsOnInvalid(t *testing.T) {
	if KeyRotateLeft.String() != "d" {
		t.Errorf("KeyRotateLeft.String() = %q, expected \"d\"", KeyRotateLeft.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("String() on invalid key should panic")
		}
	}()
	_ = Key(42).String()
}
