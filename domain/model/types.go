package model

// Header is an ordered list of field names.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Unique returns the names with repeated entries removed.
// Each name keeps the position of its first occurrence.
func (h Header) Unique() Header {
	seen := make(map[string]struct{}, len(h))
	unique := make(Header, 0, len(h))
	for _, name := range h {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// Row maps field names to string values and remembers the order in which the
// names were declared.
//
// Rows are built the way a header-driven CSV reader builds them: a record
// shorter than the field list is padded with a rest value, and values beyond
// the field list are kept in Extra. When a field name repeats, the later value
// wins but the name keeps its first position.
type Row struct {
	names  []string
	values map[string]string
	// Extra holds values found after the last declared field.
	Extra []string
}

// NewRow creates a Row from field names and a tokenized record.
func NewRow(names, record []string, restValue string) Row {
	r := Row{
		names:  make([]string, 0, len(names)),
		values: make(map[string]string, len(names)),
	}
	for i, name := range names {
		value := restValue
		if i < len(record) {
			value = record[i]
		}
		r.set(name, value)
	}
	if len(record) > len(names) {
		r.Extra = append([]string(nil), record[len(names):]...)
	}
	return r
}

func (r *Row) set(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Names returns the field names in declaration order.
func (r Row) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the value stored under name.
func (r Row) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Values returns the values in field order.
func (r Row) Values() []string {
	values := make([]string, len(r.names))
	for i, name := range r.names {
		values[i] = r.values[name]
	}
	return values
}

// Len returns the number of named fields.
func (r Row) Len() int {
	return len(r.names)
}

// Map returns a copy of the field values keyed by name.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Equal compare Row.
func (r Row) Equal(r2 Row) bool {
	if !Header(r.names).Equal(r2.names) || len(r.Extra) != len(r2.Extra) {
		return false
	}
	for _, name := range r.names {
		if r.values[name] != r2.values[name] {
			return false
		}
	}
	for i, v := range r.Extra {
		if v != r2.Extra[i] {
			return false
		}
	}
	return true
}
