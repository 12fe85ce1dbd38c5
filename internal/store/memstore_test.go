package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()

	if err := s.Put("Cuba", "Havana"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if v, ok := s.Get("Cuba"); !ok || v != "Havana" {
		t.Fatalf("Get(Cuba) = %q, %v, want Havana, true", v, ok)
	}

	removed, err := s.Delete("Cuba")
	if err != nil || !removed {
		t.Fatalf("Delete(Cuba) = %v, %v, want true, nil", removed, err)
	}
	if v, ok := s.Get("Cuba"); ok {
		t.Fatalf("Get(Cuba) after delete = %q, true, want absent", v)
	}
}

func TestMemStore_Overwrite(t *testing.T) {
	s := NewMemStore()
	s.Put("k", "v1")
	s.Put("k", "v2")

	if v, _ := s.Get("k"); v != "v2" {
		t.Errorf("Get(k) = %q, want v2", v)
	}
	if n := s.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestMemStore_DeleteIdempotent(t *testing.T) {
	s := NewMemStore()
	s.Put("k", "v")

	first, _ := s.Delete("k")
	second, _ := s.Delete("k")
	if !first {
		t.Error("first Delete reported key missing")
	}
	if second {
		t.Error("second Delete reported key removed")
	}
}

func TestMemStore_EmptyValueIsPresent(t *testing.T) {
	s := NewMemStore()
	s.Put("blank", "")

	v, ok := s.Get("blank")
	if !ok || v != "" {
		t.Errorf("Get(blank) = %q, %v, want \"\", true", v, ok)
	}
	if _, ok := s.Get("Nowhere"); ok {
		t.Error("Get(Nowhere) on store reported found")
	}
}

func TestMemStore_LastWriteWins(t *testing.T) {
	type op struct {
		del   bool
		key   string
		value string
	}
	cases := []struct {
		name  string
		ops   []op
		key   string
		want  string
		found bool
	}{
		{"never written", nil, "a", "", false},
		{"single put", []op{{key: "a", value: "1"}}, "a", "1", true},
		{"put then delete", []op{{key: "a", value: "1"}, {del: true, key: "a"}}, "a", "", false},
		{"delete then put", []op{{del: true, key: "a"}, {key: "a", value: "2"}}, "a", "2", true},
		{"other key untouched", []op{{key: "a", value: "1"}, {del: true, key: "b"}}, "a", "1", true},
		{"three puts", []op{{key: "a", value: "1"}, {key: "a", value: "2"}, {key: "a", value: "3"}}, "a", "3", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewMemStore()
			for _, o := range c.ops {
				if o.del {
					s.Delete(o.key)
				} else {
					s.Put(o.key, o.value)
				}
			}
			got, found := s.Get(c.key)
			if got != c.want || found != c.found {
				t.Errorf("Get(%q) = %q, %v, want %q, %v", c.key, got, found, c.want, c.found)
			}
		})
	}
}

func TestMemStore_ConcurrentDistinctKeys(t *testing.T) {
	s := NewMemStore()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key-%d", i)
		want := fmt.Sprintf("value-%d", i)
		if got, ok := s.Get(key); !ok || got != want {
			t.Errorf("Get(%q) = %q, %v, want %q", key, got, ok, want)
		}
	}
}

func TestMemStore_NoTornWrites(t *testing.T) {
	s := NewMemStore()
	written := map[string]bool{}
	for i := 0; i < 8; i++ {
		written[fmt.Sprintf("writer-%d", i)] = true
	}

	var wg sync.WaitGroup
	for v := range written {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.Put("shared", v)
				if j%50 == 0 {
					s.Delete("shared")
				}
			}
		}(v)
	}

	errs := make(chan string, 1)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				if v, ok := s.Get("shared"); ok && !written[v] {
					select {
					case errs <- v:
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()

	select {
	case v := <-errs:
		t.Fatalf("reader observed value %q that no writer stored", v)
	default:
	}
}
