package mock

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/broady/mockql/schema"
)

func TestMocker_DefaultRanges(t *testing.T) {
	m := New(WithSeed(42))
	for i := 0; i < 500; i++ {
		n, ok := m.Scalar(schema.ScalarInt).(int)
		if !ok || n < -100 || n > 100 {
			t.Fatalf("Int mock out of range: %v", n)
		}
		f, ok := m.Scalar(schema.ScalarFloat).(float64)
		if !ok || f < -100 || f >= 100 {
			t.Fatalf("Float mock out of range: %v", f)
		}
		if _, ok := m.Scalar(schema.ScalarBoolean).(bool); !ok {
			t.Fatal("Boolean mock is not a bool")
		}
	}
	if got := m.Scalar(schema.ScalarString); got != "Hello World" {
		t.Errorf("String mock = %v, want Hello World", got)
	}
	if got, ok := m.Scalar(schema.ScalarJSON).(map[string]any); !ok || len(got) != 0 {
		t.Errorf("JSON mock = %v, want empty object", got)
	}
}

func TestMocker_SeedIsDeterministic(t *testing.T) {
	shape := schema.List(&schema.ObjectDescriptor{Fields: []schema.FieldDescriptor{
		{Name: "id", Type: schema.Int()},
		{Name: "score", Type: schema.Float()},
		{Name: "active", Type: schema.Boolean()},
	}})

	a := New(WithSeed(7)).Value(shape)
	b := New(WithSeed(7)).Value(shape)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different values:\n%v\n%v", a, b)
	}
}

func TestMocker_WithGenerator(t *testing.T) {
	m := New(WithGenerator(schema.ScalarString, func(r *rand.Rand) any {
		return "custom"
	}))
	if got := m.Scalar(schema.ScalarString); got != "custom" {
		t.Errorf("Scalar(String) = %v, want custom", got)
	}
}

func TestMocker_PanickingGeneratorYieldsNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := New(
		WithLogger(logger),
		WithGenerator(schema.ScalarInt, func(*rand.Rand) any { panic("boom") }),
	)

	if got := m.Scalar(schema.ScalarInt); got != nil {
		t.Errorf("Scalar(Int) = %v, want nil", got)
	}
	if !strings.Contains(buf.String(), "mock generator failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
	// The mutex must have been released.
	if got := m.Scalar(schema.ScalarString); got != "Hello World" {
		t.Errorf("mocker unusable after panic: %v", got)
	}
}

func TestMocker_Value(t *testing.T) {
	m := New(WithListLength(3))

	list, ok := m.Value(schema.List(schema.String())).([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("list mock = %v, want 3 elements", list)
	}

	obj, ok := m.Value(&schema.ObjectDescriptor{Fields: []schema.FieldDescriptor{
		{Name: "name", Type: schema.String()},
		{Name: "tags", Type: schema.List(schema.String())},
	}}).(map[string]any)
	if !ok {
		t.Fatal("object mock is not a map")
	}
	if obj["name"] != "Hello World" {
		t.Errorf("name = %v", obj["name"])
	}
	if tags, ok := obj["tags"].([]any); !ok || len(tags) != 3 {
		t.Errorf("tags = %v", obj["tags"])
	}

	if got := New(WithListLength(-1)).ListLength(); got != 0 {
		t.Errorf("negative list length should clamp to 0, got %d", got)
	}
}

func TestMocker_Concurrent(t *testing.T) {
	m := New(WithSeed(1))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Scalar(schema.ScalarInt)
			}
		}()
	}
	wg.Wait()
}
