package tabulatedfunction

import (
	"encoding/json"
)

// Dump is a serializable representation of a TabulatedFunction. It carries
// the configuration input only; derived state is rebuilt on restore.
type Dump struct {
	Method  string    `json:"method"`
	Natural bool      `json:"natural,omitempty"`
	Points  []TFPoint `json:"points"`
}

// FromDump restores a tabulated function from a dump. The points go
// through Configure, as they may come from an untrusted source.
func (f *TabulatedFunction) FromDump(d *Dump) error {
	m, err := MethodByName(d.Method, d.Natural)
	if err != nil {
		return err
	}
	f.release()
	f.method = m
	return f.Configure(d.Points)
}

// Dump generates a serializable dump for a tabulated function.
func (f *TabulatedFunction) Dump() *Dump {
	d := &Dump{
		Method: f.m().Name(),
		Points: f.ExtractTable(-1),
	}
	if b, ok := f.m().(Boundary); ok {
		d.Natural = b.IsNatural()
	}
	return d
}

// MarshalJSON implements the json.Marshaler interface for TabulatedFunction.
func (f *TabulatedFunction) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Dump())
}

// UnmarshalJSON implements the json.Unmarshaler interface for TabulatedFunction.
func (f *TabulatedFunction) UnmarshalJSON(bytes []byte) error {
	var dump Dump
	if err := json.Unmarshal(bytes, &dump); err != nil {
		return err
	}
	return f.FromDump(&dump)
}
