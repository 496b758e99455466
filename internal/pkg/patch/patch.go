package patch

import "reflect"

// Empty reports whether every field of a partial update was omitted,
// i.e. each argument is nil or a nil pointer.
func Empty(fields ...any) bool {
	for _, f := range fields {
		if f == nil {
			continue
		}
		v := reflect.ValueOf(f)
		if v.Kind() != reflect.Pointer || !v.IsNil() {
			return false
		}
	}
	return true
}
