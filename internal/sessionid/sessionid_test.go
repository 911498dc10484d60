package sessionid

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
)

func TestNew(t *testing.T) {
	id := New()
	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestNewUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := New()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestNewTimeSorted(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	g := NewGenerator(mock, nil)

	var ids []string
	for range 10 {
		ids = append(ids, g.New())
		mock.Advance(time.Millisecond).MustWait(ctx)
	}
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.UnixMilli(0))
	random := bytes.Repeat([]byte{0}, 20)

	a := NewGenerator(mock, bytes.NewReader(random)).New()
	b := NewGenerator(mock, bytes.NewReader(random)).New()
	if a != b {
		t.Errorf("same clock and bytes gave %s and %s", a, b)
	}
	// Zero time and zero bytes leave only the version and variant bits set.
	if want := "0000000000e008000000000000"; a != want {
		t.Errorf("got %s, want %s", a, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", true},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp411", true},
		{"first char too high", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"excluded letter", "01h2xcejqtf2nbrexx3vqjhp4u", true},
		{"uppercase", "01H2XCEJQTF2NBREXX3VQJHP41", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
