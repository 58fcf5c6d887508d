// Package keycase maps coding keys between naming conventions.
//
// All transforms are pure and operate on Unicode scalar values (runes), so
// identifiers outside ASCII convert correctly:
//
//	ToSnakeCase("myStringKey")    == "my_string_key"
//	FromSnakeCase("my_string_key") == "myStringKey"
//	ToSnakeCase("größeÄnderung")  == "größe_änderung"
//
// ToSnakeCase and FromSnakeCase are not mutual inverses for keys with
// leading, trailing or consecutive underscores, or with uppercase runs.
package keycase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Func transforms one coding key.
type Func func(key string) string

// Identity returns key unchanged.
func Identity(key string) string { return key }

// ToSnakeCase inserts '_' before every uppercase rune and lower-cases it.
// A leading uppercase rune also gets the underscore ("Key" -> "_key").
func ToSnakeCase(key string) string {
	if !hasUpper(key) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + len(key)/2)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FromSnakeCase deletes every '_' and upper-cases the rune that follows it.
// A trailing '_' is dropped; "__" yields a single '_' because the second
// underscore is the rune being upper-cased.
func FromSnakeCase(key string) string {
	if strings.IndexByte(key, '_') < 0 {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); {
		r, size := utf8.DecodeRuneInString(key[i:])
		i += size
		if r != '_' {
			b.WriteRune(r)
			continue
		}
		if i >= len(key) {
			break
		}
		next, nsize := utf8.DecodeRuneInString(key[i:])
		i += nsize
		b.WriteRune(unicode.ToUpper(next))
	}
	return b.String()
}

// LowerCamel derives a coding key from a Go identifier by lower-casing its
// leading uppercase run, keeping the last rune of a run that starts a new
// word: "String" -> "string", "ID" -> "id", "URLPath" -> "urlPath".
func LowerCamel(name string) string {
	runes := []rune(name)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return name
	}
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLetter(runes[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
