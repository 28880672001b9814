package docs

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/sigdoc/pkg/errors"
)

// UnmarshalJSON decodes the [tag, [args...]] pair form of a case.
func (c *Case) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.New(errors.ErrCodeInvalidDocs, "union case must be a [tag, args] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Tag); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Args)
}

// MarshalJSON encodes c in the [tag, [args...]] pair form.
func (c Case) MarshalJSON() ([]byte, error) {
	args := c.Args
	if args == nil {
		args = []string{}
	}
	return json.Marshal([]any{c.Tag, args})
}

// Read decodes docs.json from r. Both the usual array of modules and a
// single module object are accepted.
//
// Read returns an [errors.ErrCodeInvalidDocs] error when the JSON is
// malformed or when a module or entry is unnamed. Read does not close r.
func Read(r io.Reader) ([]Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocs, err, "read docs")
	}
	return Parse(data)
}

// Parse decodes docs.json content.
func Parse(data []byte) ([]Module, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocs, "empty document")
	}

	var modules []Module
	if trimmed[0] == '{' {
		var m Module
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocs, err, "decode module")
		}
		modules = []Module{m}
	} else if err := json.Unmarshal(trimmed, &modules); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocs, err, "decode modules")
	}

	for i := range modules {
		if err := validate(&modules[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocs, err, "module %d", i)
		}
	}
	return modules, nil
}

// Load reads the docs.json file at path.
func Load(path string) ([]Module, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Find returns the module called name.
func Find(modules []Module, name string) (Module, error) {
	for _, m := range modules {
		if m.Name == name {
			return m, nil
		}
	}
	return Module{}, errors.New(errors.ErrCodeNotFound, "module %q not found", name)
}

func validate(m *Module) error {
	if err := errors.ValidateModuleName(m.Name); err != nil {
		return err
	}
	for _, e := range m.Entries() {
		if err := errors.ValidateEntryName(e.EntryName()); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidName, err, "%s %s in %s", e.EntryKind(), e.EntryName(), m.Name)
		}
	}
	for _, u := range m.Unions {
		for _, c := range u.Cases {
			if err := errors.ValidateEntryName(c.Tag); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidName, err, "case of %s in %s", u.Name, m.Name)
			}
		}
	}
	return nil
}
