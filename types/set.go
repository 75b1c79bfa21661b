package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mitchellh/hashstructure"
)

type Hashable interface {
	Hash() string
}

type (
	// Set holds unique elements keyed by their hash
	Set[T comparable] struct {
		hash    map[string]nothing
		storage map[string]T
	}

	nothing struct{}
)

// NewSet creates a set holding initial
func NewSet[T comparable](initial ...T) *Set[T] {
	s := &Set[T]{
		hash:    make(map[string]nothing),
		storage: make(map[string]T),
	}

	s.Insert(initial...)

	return s
}

func (st *Set[T]) Hash(elem T) string {
	if hashable, yes := any(elem).(Hashable); yes {
		return hashable.Hash()
	}

	uniqueHash, err := hashstructure.Hash(elem, nil)
	if err != nil {
		return fmt.Sprint(elem)
	}

	return fmt.Sprintf("%d", uniqueHash)
}

// Exists reports whether element is in the set; a nil set holds nothing
func (st *Set[T]) Exists(element T) bool {
	if st == nil {
		return false
	}
	_, exists := st.hash[st.Hash(element)]
	return exists
}

func (st *Set[T]) Insert(elements ...T) {
	for _, elem := range elements {
		if st.Exists(elem) {
			continue
		}

		hash := st.Hash(elem)

		st.hash[hash] = nothing{}
		st.storage[hash] = elem
	}
}

func (st *Set[T]) Len() int {
	if st == nil {
		return 0
	}
	return len(st.hash)
}

// Array returns the elements ordered by their string form
func (st *Set[T]) Array() []T {
	arr := []T{}
	if st == nil {
		return arr
	}

	for _, value := range st.storage {
		arr = append(arr, value)
	}
	sort.Slice(arr, func(i, j int) bool {
		return fmt.Sprint(arr[i]) < fmt.Sprint(arr[j])
	})

	return arr
}

func (st *Set[T]) String() string {
	values := []string{}
	for _, value := range st.Array() {
		values = append(values, fmt.Sprint(value))
	}

	return fmt.Sprintf("[%s]", strings.Join(values, ", "))
}

func (st *Set[T]) UnmarshalJSON(data []byte) error {
	// to init underlying field during unmarshalling
	*st = *NewSet[T]()
	arr := []T{}
	err := json.Unmarshal(data, &arr)
	if err != nil {
		return err
	}

	st.Insert(arr...)

	return nil
}

func (st *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.Array())
}
