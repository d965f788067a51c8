package mapping

import "fmt"

type bimap struct {
	forward, reverse map[string]string
}

func newBimap() *bimap {
	return &bimap{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// add keeps the first mapping for a key or a value. Later conflicting mappings are rejected.
func (b *bimap) add(key, value string) error {
	if v, ok := b.forward[key]; ok {
		return fmt.Errorf("provided key already used in mapping %s->%s", key, v)
	}
	if k, ok := b.reverse[value]; ok {
		return fmt.Errorf("provided value already used in mapping %s->%s", k, value)
	}

	b.forward[key] = value
	b.reverse[value] = key

	return nil
}
