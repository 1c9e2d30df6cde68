// Package schemes enumerates the compression schemes known to gostream
package schemes

import (
	"fmt"
	"strings"
)

// Type denotes the type of compression scheme
type Type int

// Enumeration of supported compression schemes
const (
	SchemeNone  Type = iota // No compression (default, hence allocated the value 0)
	SchemeGzip              // gzip / DEFLATE
	SchemeBzip2             // bzip2 (decompression only)
	SchemeLZ4               // LZ4 frame format
	SchemeZSTD              // ZStandard
	SchemeS2                // S2 (Snappy compatible)

	MaxScheme = SchemeS2
)

var names = [...]string{
	SchemeNone:  "none",
	SchemeGzip:  "gzip",
	SchemeBzip2: "bzip2",
	SchemeLZ4:   "lz4",
	SchemeZSTD:  "zstd",
	SchemeS2:    "s2",
}

var extensions = [...]string{
	SchemeNone:  "",
	SchemeGzip:  ".gz",
	SchemeBzip2: ".bz2",
	SchemeLZ4:   ".lz4",
	SchemeZSTD:  ".zst",
	SchemeS2:    ".s2",
}

// aliases maps alternative spellings to their scheme
var aliases = map[string]Type{
	"":     SchemeNone,
	"null": SchemeNone,
	"gz":   SchemeGzip,
	"bz2":  SchemeBzip2,
	"zst":  SchemeZSTD,
}

// String returns the canonical name of the scheme
func (t Type) String() string {
	if t < 0 || t > MaxScheme {
		return fmt.Sprintf("unknown(%d)", int(t))
	}
	return names[t]
}

// Extension returns the file suffix conventionally used for the scheme (empty for none)
func (t Type) Extension() string {
	if t < 0 || t > MaxScheme {
		return ""
	}
	return extensions[t]
}

// Parse resolves a scheme name (case-insensitive, aliases allowed) to its type
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := aliases[s]; ok {
		return t, nil
	}
	for t, name := range names {
		if name == s {
			return Type(t), nil
		}
	}
	return SchemeNone, fmt.Errorf("unsupported compression scheme: %q", s)
}

// FromExtension returns the scheme matching the suffix of path. Paths without a known
// suffix map to SchemeNone with ok set to false
func FromExtension(path string) (t Type, ok bool) {
	for t := SchemeNone + 1; t <= MaxScheme; t++ {
		if strings.HasSuffix(path, extensions[t]) {
			return t, true
		}
	}
	return SchemeNone, false
}
