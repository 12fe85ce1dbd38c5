package store

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/heysubinoy/remotekv/internal/logging"
)

func newTestService(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewService(NewMemStore(), logging.New("store", &buf, "info")), &buf
}

func TestService_PutLogsCaller(t *testing.T) {
	svc, buf := newTestService(t)

	if err := svc.Put("10.0.0.7:51515", "Cuba", "Havana"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"PUT request received",
		"key=Cuba",
		"value=Havana",
		"10.0.0.7:51515",
		"PUT response sent",
		"result=success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("Put wrote %d log lines, want 2", lines)
	}
}

func TestService_GetFoundAndMissing(t *testing.T) {
	svc, buf := newTestService(t)
	svc.Put("c", "Egypt", "Cairo")
	buf.Reset()

	if v, ok := svc.Get("c", "Egypt"); !ok || v != "Cairo" {
		t.Fatalf("Get(Egypt) = %q, %v, want Cairo, true", v, ok)
	}
	if !strings.Contains(buf.String(), "value=Cairo") {
		t.Errorf("found GET did not log value:\n%s", buf.String())
	}

	buf.Reset()
	if _, ok := svc.Get("c", "Nowhere"); ok {
		t.Fatal("Get(Nowhere) reported found")
	}
	if !strings.Contains(buf.String(), "key not found") {
		t.Errorf("missing GET did not log not found:\n%s", buf.String())
	}
}

func TestService_DeleteReportsExistence(t *testing.T) {
	svc, buf := newTestService(t)
	svc.Put("c", "Cuba", "Havana")

	removed, err := svc.Delete("c", "Cuba")
	if err != nil || !removed {
		t.Fatalf("Delete(Cuba) = %v, %v, want true, nil", removed, err)
	}
	buf.Reset()

	removed, err = svc.Delete("c", "Cuba")
	if err != nil || removed {
		t.Fatalf("second Delete(Cuba) = %v, %v, want false, nil", removed, err)
	}
	if !strings.Contains(buf.String(), "key not found") {
		t.Errorf("no-op DELETE did not log not found:\n%s", buf.String())
	}
}

func TestService_UnknownCaller(t *testing.T) {
	svc, buf := newTestService(t)
	svc.Get("", "k")

	if !strings.Contains(buf.String(), "client="+UnknownCaller) {
		t.Errorf("empty caller not logged as %q:\n%s", UnknownCaller, buf.String())
	}
}

type failingStore struct{ MemStore }

var errBackend = errors.New("backend unavailable")

func (*failingStore) Put(string, string) error    { return errBackend }
func (*failingStore) Delete(string) (bool, error) { return false, errBackend }

func TestService_StoreErrorsWrapped(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(&failingStore{}, logging.New("store", &buf, "info"))

	if err := svc.Put("c", "k", "v"); !errors.Is(err, errBackend) {
		t.Errorf("Put error = %v, want wrapping %v", err, errBackend)
	}
	if _, err := svc.Delete("c", "k"); !errors.Is(err, errBackend) {
		t.Errorf("Delete error = %v, want wrapping %v", err, errBackend)
	}
	if !strings.Contains(buf.String(), "[ERROR]") {
		t.Errorf("store failure not logged at error level:\n%s", buf.String())
	}
}
