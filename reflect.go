// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PropNames returns the names of the properties of p in declaration order.
// Property names are the json field names of the props struct.
//
func PropNames(p Props) []string {
	var names []string
	forEachProp(p, func(name string, _ reflect.Value) bool {
		names = append(names, name)
		return true
	})
	return names
}

// GetProp returns the value of property name in p.
//
func GetProp(p Props, name string) (interface{}, error) {
	v, err := propField(p, name)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// SetProp sets property name in p to value. Numeric values are converted to
// the field's type; strings are parsed when the field is a bool or a number.
// Out of range values are clamped.
//
func SetProp(p Props, name string, value interface{}) error {
	v, err := propField(p, name)
	if err != nil {
		return err
	}
	if err = assign(v, value); err != nil {
		return errors.Wrapf(err, "property %s", name)
	}
	if n, ok := p.(normalizer); ok {
		n.normalize()
	}
	return nil
}

func propField(p Props, name string) (reflect.Value, error) {
	var field reflect.Value
	forEachProp(p, func(n string, v reflect.Value) bool {
		if n == name {
			field = v
			return false
		}
		return true
	})
	if !field.IsValid() {
		return field, &PropError{Name: name}
	}
	return field, nil
}

func forEachProp(p Props, f func(name string, v reflect.Value) bool) {
	if p == nil {
		return
	}
	val := reflect.ValueOf(p)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}
	walkFields(val.Elem(), f)
}

func walkFields(s reflect.Value, f func(string, reflect.Value) bool) bool {
	typ := s.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if !walkFields(s.Field(i), f) {
				return false
			}
			continue
		}
		tag, ok := sf.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if !f(name, s.Field(i)) {
			return false
		}
	}
	return true
}

func assign(v reflect.Value, value interface{}) error {
	if s, ok := value.(string); ok && v.Kind() != reflect.String {
		return assignString(v, s)
	}
	x := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		if x.Kind() != reflect.Bool {
			return errors.Errorf("expected a bool, got %T", value)
		}
		v.SetBool(x.Bool())
	case reflect.String:
		if x.Kind() != reflect.String {
			return errors.Errorf("expected a string, got %T", value)
		}
		v.SetString(x.String())
	case reflect.Float64, reflect.Int:
		f, ok := toFloat(x)
		if !ok {
			return errors.Errorf("expected a number, got %T", value)
		}
		if v.Kind() == reflect.Int {
			v.SetInt(int64(f))
		} else {
			v.SetFloat(f)
		}
	default:
		return errors.Errorf("unsupported property type %s", v.Type())
	}
	return nil
}

func assignString(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(i))
	default:
		return errors.Errorf("unsupported property type %s", v.Type())
	}
	return nil
}

func toFloat(x reflect.Value) (float64, bool) {
	switch x.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(x.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(x.Uint()), true
	case reflect.Float32, reflect.Float64:
		return x.Float(), true
	}
	return 0, false
}
