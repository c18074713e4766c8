// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rowmap translates between the database row shape (snake_case keys)
// and the application shape (camelCase keys) consumed by the legacy
// front-end. It also provides the cheap UUID shape check used to short-circuit
// lookups before they reach the database.
package rowmap

import (
	"regexp"
	"strings"
	"unicode"
)

// uuidPattern matches the canonical hyphenated UUID form: version nibble 1-5,
// variant nibble 8, 9, a, or b.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsValidUUID reports whether s has the canonical 8-4-4-4-12 UUID shape.
// A false result means callers can answer "not found" locally instead of
// paying for a database round trip that is guaranteed to miss.
func IsValidUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// SnakeToCamel converts a snake_case identifier to camelCase: each
// underscore is removed and the following letter is uppercased.
// "short_description" → "shortDescription".
func SnakeToCamel(key string) string {
	if !strings.ContainsRune(key, '_') {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelToSnake converts a camelCase identifier to snake_case: an underscore
// is inserted before each uppercase letter, which is then lowercased.
// "shortDescription" → "short_description".
//
// SnakeToCamel and CamelToSnake are exact inverses for simple identifiers
// (no consecutive capitals, no digits at case boundaries) — the model layer
// relies on this.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToModel rewrites every key of a flat row from snake_case to camelCase.
// When an "id" key is present its value is duplicated under "_id" for older
// client code that expects a Mongo-style identity field. Values pass through
// untouched.
func ToModel(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}
	out := make(map[string]any, len(row)+1)
	for k, v := range row {
		out[SnakeToCamel(k)] = v
	}
	if id, ok := row["id"]; ok {
		out["_id"] = id
	}
	return out
}

// ToRow rewrites every key of an application object from camelCase to
// snake_case and drops any "_id" key — the store's identity column is always
// named "id".
func ToRow(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == "_id" {
			continue
		}
		out[CamelToSnake(k)] = v
	}
	return out
}
