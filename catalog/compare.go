package catalog

import (
	"maps"
	"slices"
	"strings"
)

// keySep joins identity tuples into map keys; catalogs never return NUL in identifiers.
const keySep = "\x00"

type indexedObject struct {
	tuple []string
	obj   Object
}

// CompareObjects compares two object sets of one category using an explicit
// identity key. The category supplies the reported name and extra fields.
func CompareObjects(left, right []Object, key IdentityKey, category Category) ([]Difference, error) {
	desc, err := DescriptorFor(category)
	if err != nil {
		return nil, err
	}
	desc.IdentityKey = key
	return Compare(left, right, desc)
}

// Compare computes the three-way difference between two object sets.
//
// Objects found on one side only yield one StateUnique record. Objects found
// on both sides whose field maps are not exactly equal yield two
// StateDifference records, one per side. Records are ordered left-only,
// right-only, then common, each ascending by identity tuple.
//
// An *IdentityCollisionError is returned when two objects of one side share an
// identity tuple.
func Compare(left, right []Object, desc Descriptor) ([]Difference, error) {
	leftIdx, err := indexObjects(left, desc, SideLeft)
	if err != nil {
		return nil, err
	}
	rightIdx, err := indexObjects(right, desc, SideRight)
	if err != nil {
		return nil, err
	}

	var onlyLeft, onlyRight, common []indexedObject
	for k, lo := range leftIdx {
		if _, ok := rightIdx[k]; ok {
			common = append(common, lo)
		} else {
			onlyLeft = append(onlyLeft, lo)
		}
	}
	for k, ro := range rightIdx {
		if _, ok := leftIdx[k]; !ok {
			onlyRight = append(onlyRight, ro)
		}
	}
	sortByTuple(onlyLeft)
	sortByTuple(onlyRight)
	sortByTuple(common)

	var diffs []Difference
	for _, o := range onlyLeft {
		diffs = append(diffs, newDifference(desc, StateUnique, SideLeft, o.obj))
	}
	for _, o := range onlyRight {
		diffs = append(diffs, newDifference(desc, StateUnique, SideRight, o.obj))
	}
	for _, o := range common {
		ro := rightIdx[joinTuple(o.tuple)]
		if maps.Equal(o.obj, ro.obj) {
			continue
		}
		diffs = append(diffs,
			newDifference(desc, StateDifference, SideLeft, o.obj),
			newDifference(desc, StateDifference, SideRight, ro.obj),
		)
	}

	return diffs, nil
}

func indexObjects(objs []Object, desc Descriptor, side Side) (map[string]indexedObject, error) {
	idx := make(map[string]indexedObject, len(objs))
	for _, obj := range objs {
		tuple := desc.IdentityKey.Tuple(obj)
		k := joinTuple(tuple)
		if _, dup := idx[k]; dup {
			return nil, &IdentityCollisionError{Category: desc.Category, Side: side, Key: tuple}
		}
		idx[k] = indexedObject{tuple: tuple, obj: obj}
	}
	return idx, nil
}

func joinTuple(tuple []string) string {
	return strings.Join(tuple, keySep)
}

func sortByTuple(objs []indexedObject) {
	slices.SortFunc(objs, func(a, b indexedObject) int {
		return slices.Compare(a.tuple, b.tuple)
	})
}

func newDifference(desc Descriptor, state State, side Side, obj Object) Difference {
	extra := make([]string, len(desc.ExtraFields))
	for i, field := range desc.ExtraFields {
		extra[i] = obj[field]
	}
	return Difference{
		Category: desc.Category,
		State:    state,
		Side:     side,
		Schema:   obj["schema"],
		Name:     obj[desc.NameField],
		Extra:    extra,
	}
}
