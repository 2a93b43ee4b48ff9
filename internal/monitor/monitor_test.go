package monitor

import (
	"reflect"
	"testing"
)

func newTestRegistry(t *testing.T, keys ...string) *Registry {
	t.Helper()
	sources := make([]Source, len(keys))
	for i, key := range keys {
		sources[i] = Source{Key: key}
	}
	r, err := NewRegistry(sources, 10)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func TestRegistryPreservesCreationOrder(t *testing.T) {
	r := newTestRegistry(t, "/var/log/z.log", "/var/log/a.log", "/var/log/m.log")
	want := []string{"/var/log/z.log", "/var/log/a.log", "/var/log/m.log"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, m := range r.Monitors() {
		if m.Index != i {
			t.Fatalf("expected index %d for %s, got %d", i, m.Key, m.Index)
		}
		if got := r.IndexOf(m.Key); got != i {
			t.Fatalf("expected IndexOf(%s)=%d, got %d", m.Key, i, got)
		}
	}
}

func TestRegistryIndexesAreIndependentPerRegistry(t *testing.T) {
	first := newTestRegistry(t, "a", "b")
	second := newTestRegistry(t, "c")
	if first.At(1).Index != 1 || second.At(0).Index != 0 {
		t.Fatalf("expected indexes assigned per registry")
	}
}

func TestRegistryGet(t *testing.T) {
	r := newTestRegistry(t, "a", "b")
	m, ok := r.Get("b")
	if !ok || m.Key != "b" {
		t.Fatalf("expected monitor b, got %#v (ok=%v)", m, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected lookup miss for unknown key")
	}
	if r.IndexOf("missing") != -1 {
		t.Fatalf("expected -1 for unknown key")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Source{{Key: "a"}, {Key: "a"}}, 5)
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestRegistryNameDefaultsToKey(t *testing.T) {
	r, err := NewRegistry([]Source{{Key: "/abs/app.log", Name: "app.log"}, {Key: "/abs/b.log"}}, 5)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if r.At(0).Name != "app.log" || r.At(1).Name != "/abs/b.log" {
		t.Fatalf("unexpected names %q, %q", r.At(0).Name, r.At(1).Name)
	}
}

func TestRegistryMonitorBuffersUseCapacity(t *testing.T) {
	r := newTestRegistry(t, "a")
	if got := r.At(0).Content.Cap(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestRegistryFocusFlags(t *testing.T) {
	r := newTestRegistry(t, "a", "b")
	if _, ok := r.Focused(); ok {
		t.Fatalf("expected no focus initially")
	}
	r.SetFocused("b", true)
	m, ok := r.Focused()
	if !ok || m.Key != "b" {
		t.Fatalf("expected b focused")
	}
	r.SetFocused("missing", true)
	r.SetFocused("b", false)
	if _, ok := r.Focused(); ok {
		t.Fatalf("expected focus cleared")
	}
}
