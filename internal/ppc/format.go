package ppc

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

var fieldNameCache sync.Map // reflect.Type -> []string

// Format renders an operation as `Name { field: value, ... }`. Operations
// without operands render as the bare name.
func Format(op Op) string {
	if op == nil {
		return "<nil>"
	}
	if u, ok := op.(Unknown); ok {
		return fmt.Sprintf("Unknown { raw: 0x%08x }", u.Raw)
	}

	v := reflect.ValueOf(op)
	t := v.Type()
	if t.NumField() == 0 {
		return t.Name()
	}

	names := fieldNames(t)
	var b strings.Builder
	b.WriteString(t.Name())
	b.WriteString(" { ")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		fmt.Fprint(&b, v.Field(i).Interface())
	}
	b.WriteString(" }")
	return b.String()
}

func fieldNames(t reflect.Type) []string {
	if cached, ok := fieldNameCache.Load(t); ok {
		return cached.([]string)
	}
	names := make([]string, t.NumField())
	for i := range names {
		names[i] = snakeCase(t.Field(i).Name)
	}
	fieldNameCache.Store(t, names)
	return names
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

var fixedMnemonics = map[string]string{
	"AddicRc": "addic.",
	"Andi":    "andi.",
	"Andis":   "andis.",
	"PsqL":    "psq_l",
	"PsqLu":   "psq_lu",
	"PsqSt":   "psq_st",
	"PsqStu":  "psq_stu",
	"Unknown": ".long",
}

// Mnemonic returns the assembler mnemonic including the o, ., l and a
// suffixes carried by the operation's flags.
func Mnemonic(op Op) string {
	switch o := op.(type) {
	case nil:
		return ""
	case Branch:
		return "b" + branchSuffix(o.Link, o.Mode)
	case Bc:
		return "bc" + branchSuffix(o.Link, o.Mode)
	case Bclr:
		return "bclr" + branchSuffix(o.Link, Relative)
	case Bcctr:
		return "bcctr" + branchSuffix(o.Link, Relative)
	}

	v := reflect.ValueOf(op)
	name := v.Type().Name()
	if m, ok := fixedMnemonics[name]; ok {
		return m
	}
	m := strings.ToLower(name)
	if f := v.FieldByName("Oe"); f.IsValid() && f.Bool() {
		m += "o"
	}
	if f := v.FieldByName("Rc"); f.IsValid() && f.Bool() {
		m += "."
	}
	return m
}

func branchSuffix(link bool, mode AddressingMode) string {
	s := ""
	if link {
		s += "l"
	}
	if mode == Absolute {
		s += "a"
	}
	return s
}
