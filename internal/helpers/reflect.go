package helpers

import "reflect"

func toSlice(v interface{}) []interface{} {
	rv := reflect.Indirect(reflect.ValueOf(v))
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func mapLen(v interface{}) int {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map:
		return rv.Len()
	case reflect.Struct:
		return rv.NumField()
	}
	return 0
}
