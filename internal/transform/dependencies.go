package transform

// Dependencies is the set of upstream artifact files available to an
// action that declared it needs them.
type Dependencies struct {
	files []string
}

func NewDependencies(files ...string) *Dependencies {
	d := &Dependencies{files: make([]string, len(files))}
	copy(d.files, files)
	return d
}

// Files returns the dependency files in declaration order.
func (d *Dependencies) Files() []string {
	out := make([]string, len(d.files))
	copy(out, d.files)
	return out
}
