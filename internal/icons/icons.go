// Package icons classifies project icon values and normalises uploaded icon images.
//
// A project icon is stored as one of four kinds: a built-in glyph name, an
// image source (data URI or http(s) URL), literal text such as an emoji, or
// nothing. The legacy document format keeps all of these in a single string;
// Resolve recovers the kind from that string.
package icons

import (
	"encoding/json"
	"strings"
)

// Kind identifies how an icon value is displayed.
type Kind string

// Icon kinds, in classification priority order.
const (
	KindNone    Kind = "none"
	KindBuiltin Kind = "builtin"
	KindImage   Kind = "image"
	KindText    Kind = "text"
)

// DefaultBuiltin is shown when a project has no icon.
const DefaultBuiltin = "Code"

// builtinNames is the fixed set of glyphs offered by the editor swatch picker.
var builtinNames = []string{
	"Code", "Globe", "Cpu", "Layers", "Smartphone",
	"Database", "Terminal", "Cloud", "Zap", "Heart",
}

var builtinSet = func() map[string]bool {
	m := make(map[string]bool, len(builtinNames))
	for _, name := range builtinNames {
		m[name] = true
	}
	return m
}()

// Icon is the resolved form of a project icon.
type Icon struct {
	Kind  Kind
	Value string
}

// Builtins returns the built-in glyph names in picker order.
func Builtins() []string {
	out := make([]string, len(builtinNames))
	copy(out, builtinNames)
	return out
}

// IsBuiltin reports whether name exactly matches a built-in glyph.
func IsBuiltin(name string) bool {
	return builtinSet[name]
}

// Builtin returns a built-in icon. Unknown names resolve as text.
func Builtin(name string) Icon {
	if !IsBuiltin(name) {
		return Text(name)
	}
	return Icon{Kind: KindBuiltin, Value: name}
}

// Image returns an image icon for a data URI or URL.
func Image(src string) Icon {
	return Icon{Kind: KindImage, Value: src}
}

// Text returns an icon rendered as literal text.
func Text(s string) Icon {
	if s == "" {
		return Icon{Kind: KindNone}
	}
	return Icon{Kind: KindText, Value: s}
}

// IsImageSource reports whether raw looks like an embedded image or a web URL.
func IsImageSource(raw string) bool {
	return strings.HasPrefix(raw, "data:image") ||
		strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://")
}

// Resolve classifies a raw icon string. It is total and deterministic:
// an exact built-in name wins, then image sources, then anything else is text.
func Resolve(raw string) Icon {
	switch {
	case raw == "":
		return Icon{Kind: KindNone}
	case IsBuiltin(raw):
		return Icon{Kind: KindBuiltin, Value: raw}
	case IsImageSource(raw):
		return Icon{Kind: KindImage, Value: raw}
	default:
		return Icon{Kind: KindText, Value: raw}
	}
}

// String returns the legacy single-string form of the icon.
func (i Icon) String() string {
	if i.Kind == KindNone {
		return ""
	}
	return i.Value
}

// IsZero reports whether no icon is set.
func (i Icon) IsZero() bool {
	return i.Kind == "" || i.Kind == KindNone
}

// OrDefault returns the icon, or the default built-in glyph when unset.
func (i Icon) OrDefault() Icon {
	if i.IsZero() {
		return Icon{Kind: KindBuiltin, Value: DefaultBuiltin}
	}
	return i
}

// MarshalJSON writes the legacy string form so saved documents stay compatible.
func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON accepts the legacy string form and classifies it.
func (i *Icon) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Icon{Kind: KindNone}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Resolve(raw)
	return nil
}
