package catalog

import "fmt"

// Category identifies one kind of catalog object.
type Category string

const (
	CategoryTable     Category = "table"
	CategoryColumn    Category = "column"
	CategoryIndex     Category = "index"
	CategoryFunction  Category = "function"
	CategoryProcedure Category = "procedure"
	CategoryTrigger   Category = "trigger"
)

// Categories returns every category in the order they are compared and reported.
func Categories() []Category {
	return []Category{
		CategoryTable,
		CategoryColumn,
		CategoryIndex,
		CategoryFunction,
		CategoryProcedure,
		CategoryTrigger,
	}
}

// Object is one catalog row keyed by field name. SQL NULL is stored as "".
type Object map[string]string

// IdentityKey is the ordered list of fields naming an object within one catalog.
type IdentityKey []string

// Tuple returns the identity values of obj in key order.
func (k IdentityKey) Tuple(obj Object) []string {
	tuple := make([]string, len(k))
	for i, field := range k {
		tuple[i] = obj[field]
	}
	return tuple
}

// Descriptor describes how objects of one category are matched and reported.
type Descriptor struct {
	Category Category

	// IdentityKey matches objects across the two catalogs.
	IdentityKey IdentityKey

	// NameField is reported as the identifying name of the object.
	NameField string

	// ExtraFields are the category specific report columns, in order.
	ExtraFields []string

	// DefinitionFields hold free-text SQL and are normalized when read.
	DefinitionFields []string
}

var descriptors = map[Category]Descriptor{
	CategoryTable: {
		Category:    CategoryTable,
		IdentityKey: IdentityKey{"schema", "name"},
		NameField:   "name",
	},
	CategoryColumn: {
		Category:    CategoryColumn,
		IdentityKey: IdentityKey{"schema", "table_name", "column_name"},
		NameField:   "column_name",
		ExtraFields: []string{"table_name", "data_type", "is_nullable", "column_default"},
	},
	CategoryIndex: {
		Category:         CategoryIndex,
		IdentityKey:      IdentityKey{"schema", "table_name", "name"},
		NameField:        "name",
		ExtraFields:      []string{"table_name", "definition"},
		DefinitionFields: []string{"definition"},
	},
	CategoryFunction: {
		Category:         CategoryFunction,
		IdentityKey:      IdentityKey{"schema", "name", "arguments"},
		NameField:        "name",
		ExtraFields:      []string{"arguments", "definition"},
		DefinitionFields: []string{"definition"},
	},
	CategoryProcedure: {
		Category:         CategoryProcedure,
		IdentityKey:      IdentityKey{"schema", "name", "arguments"},
		NameField:        "name",
		ExtraFields:      []string{"arguments", "definition"},
		DefinitionFields: []string{"definition"},
	},
	CategoryTrigger: {
		Category:         CategoryTrigger,
		IdentityKey:      IdentityKey{"schema", "table_name", "name"},
		NameField:        "name",
		ExtraFields:      []string{"table_name", "definition"},
		DefinitionFields: []string{"definition"},
	},
}

// DescriptorFor returns the descriptor of category c.
func DescriptorFor(c Category) (Descriptor, error) {
	d, ok := descriptors[c]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return d, nil
}

// Side tells which catalog a difference record was taken from.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// State tells why an object was reported.
type State string

const (
	// StateUnique marks an object that exists in one catalog only.
	StateUnique State = "unique"
	// StateDifference marks an object present in both catalogs with different fields.
	StateDifference State = "difference"
)

// Difference is one reported object taken from one side of the comparison.
type Difference struct {
	Category Category
	State    State
	Side     Side
	Schema   string
	Name     string

	// Extra holds the values of the descriptor's ExtraFields, index aligned.
	Extra []string
}

// Field returns the value reported for an extra field, or "" if the
// descriptor does not carry it.
func (d Difference) Field(desc Descriptor, field string) string {
	for i, f := range desc.ExtraFields {
		if f == field && i < len(d.Extra) {
			return d.Extra[i]
		}
	}
	return ""
}
