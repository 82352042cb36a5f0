package isolation

import "github.com/mohae/deepcopy"

// Deep is the default Isolator, a reflective deep copy.
type Deep struct{}

func NewDeep() *Deep { return &Deep{} }

func (d *Deep) Isolate(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if iso, ok := value.(Isolatable); ok {
		return iso.IsolateValue()
	}
	return deepcopy.Copy(value), nil
}
