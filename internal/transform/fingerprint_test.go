package transform

import (
	"errors"
	"testing"

	"morph/internal/hashing"
	"morph/internal/snapshot"
)

// declaredProps is a PropertySource backed by an explicit declaration list,
// letting tests control order and kinds precisely.
type declaredProps struct {
	display string
	props   []Property
}

func (d *declaredProps) String() string { return d.display }

func (d *declaredProps) VisitProperties(v PropertyVisitor) error {
	for _, p := range d.props {
		if err := v.VisitProperty(p); err != nil {
			return err
		}
	}
	return nil
}

func valueOf(v any) func() (any, error) {
	return func() (any, error) { return v, nil }
}

func fingerprintOf(t *testing.T, src PropertySource) (hashing.Hash, error) {
	t.Helper()
	h := hashing.NewHasher()
	err := FingerprintParameters(src, snapshot.NewValues(), h)
	return h.Hash(), err
}

func TestFingerprint_DeclarationOrderIndependent(t *testing.T) {
	forward := &declaredProps{display: "params", props: []Property{
		{Name: "mode", Kind: PropertyInput, Value: valueOf("fast")},
		{Name: "level", Kind: PropertyInput, Value: valueOf(3)},
	}}
	reversed := &declaredProps{display: "params", props: []Property{
		{Name: "level", Kind: PropertyInput, Value: valueOf(3)},
		{Name: "mode", Kind: PropertyInput, Value: valueOf("fast")},
	}}

	a, err := fingerprintOf(t, forward)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	b, err := fingerprintOf(t, reversed)
	if err != nil {
		t.Fatalf("reversed: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("fingerprint must not depend on declaration order")
	}
}

func TestFingerprint_SensitiveToNameAndValue(t *testing.T) {
	base, err := fingerprintOf(t, &declaredProps{props: []Property{
		{Name: "mode", Kind: PropertyInput, Value: valueOf("fast")},
	}})
	if err != nil {
		t.Fatalf("base: %v", err)
	}

	changedValue, err := fingerprintOf(t, &declaredProps{props: []Property{
		{Name: "mode", Kind: PropertyInput, Value: valueOf("slow")},
	}})
	if err != nil {
		t.Fatalf("changed value: %v", err)
	}
	if base.Equal(changedValue) {
		t.Fatal("value change must change the fingerprint")
	}

	changedName, err := fingerprintOf(t, &declaredProps{props: []Property{
		{Name: "level", Kind: PropertyInput, Value: valueOf("fast")},
	}})
	if err != nil {
		t.Fatalf("changed name: %v", err)
	}
	if base.Equal(changedName) {
		t.Fatal("name change must change the fingerprint")
	}
}

func TestFingerprint_RequiredMissingYieldsSingleMessage(t *testing.T) {
	src := &declaredProps{display: "build params", props: []Property{
		{Name: "required", Kind: PropertyInput},
		{Name: "alsoMissing", Kind: PropertyInput, Optional: true},
	}}

	_, err := fingerprintOf(t, src)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	msgs := verr.Messages()
	if len(msgs) != 1 {
		t.Fatalf("want exactly one message, got %d: %v", len(msgs), msgs)
	}
}

func TestFingerprint_AggregatesAllMessages(t *testing.T) {
	src := &declaredProps{props: []Property{
		{Name: "a", Kind: PropertyInput},
		{Name: "b", Kind: PropertyInput},
		{Name: "report", Kind: PropertyOutputFile, Value: valueOf("out")},
	}}

	_, err := fingerprintOf(t, src)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(verr.Messages()) != 3 {
		t.Fatalf("want all 3 problems reported, got %v", verr.Messages())
	}
}

func TestFingerprint_OutputPropertyRejected(t *testing.T) {
	src := &declaredProps{props: []Property{
		{Name: "dest", Kind: PropertyOutputDirectory, Value: valueOf("out")},
	}}

	_, err := fingerprintOf(t, src)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("output properties must be a validation failure, got %v", err)
	}
}

func TestFingerprint_FileInputFailsFast(t *testing.T) {
	src := &declaredProps{props: []Property{
		{Name: "src", Kind: PropertyInputFile, Value: valueOf("in.txt")},
	}}

	_, err := fingerprintOf(t, src)
	if !errors.Is(err, ErrFileInputsUnsupported) {
		t.Fatalf("want ErrFileInputsUnsupported, got %v", err)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatal("file inputs must not be reported as a validation message")
	}
}

func TestFingerprint_DuplicateNameReported(t *testing.T) {
	src := &declaredProps{props: []Property{
		{Name: "mode", Kind: PropertyInput, Value: valueOf("a")},
		{Name: "mode", Kind: PropertyInput, Value: valueOf("b")},
	}}

	_, err := fingerprintOf(t, src)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError for duplicate name, got %v", err)
	}
}

func TestFingerprint_MapParameters(t *testing.T) {
	a := NewMapParameters("p", map[string]any{"x": 1, "y": "z"})
	b := NewMapParameters("p", map[string]any{"y": "z", "x": 1})

	ha, err := fingerprintOf(t, a)
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	hb, err := fingerprintOf(t, b)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	if !ha.Equal(hb) {
		t.Fatal("equal map parameters must fingerprint identically")
	}
}
