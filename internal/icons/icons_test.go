package icons

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
	}{
		{name: "builtin glyph", raw: "Globe", wantKind: KindBuiltin},
		{name: "every builtin", raw: "Heart", wantKind: KindBuiltin},
		{name: "data uri", raw: "data:image/png;base64,AAAA", wantKind: KindImage},
		{name: "https url", raw: "https://example.com/logo.svg", wantKind: KindImage},
		{name: "http url", raw: "http://example.com/logo.png", wantKind: KindImage},
		{name: "emoji", raw: "🔥", wantKind: KindText},
		{name: "short label", raw: "AI", wantKind: KindText},
		{name: "builtin name is case sensitive", raw: "globe", wantKind: KindText},
		{name: "non-image data uri", raw: "data:text/plain,hi", wantKind: KindText},
		{name: "empty", raw: "", wantKind: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon := Resolve(tt.raw)
			assert.Equal(t, tt.wantKind, icon.Kind)
			assert.Equal(t, tt.raw, icon.String())
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for _, raw := range []string{"Code", "🔥", "data:image/gif;base64,R0lG", ""} {
		assert.Equal(t, Resolve(raw), Resolve(raw))
		assert.Equal(t, Resolve(raw), Resolve(Resolve(raw).String()))
	}
}

func TestBuiltins_AllHaveGlyphs(t *testing.T) {
	names := Builtins()
	require.Len(t, names, 10)
	for _, name := range names {
		assert.True(t, IsBuiltin(name))
		assert.NotEmpty(t, Glyph(name), name)
	}

	// Returned slice is a copy.
	names[0] = "Mutated"
	assert.Equal(t, "Code", Builtins()[0])
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, Icon{Kind: KindBuiltin, Value: DefaultBuiltin}, Resolve("").OrDefault())
	assert.Equal(t, Text("🚀"), Text("🚀").OrDefault())
	assert.Equal(t, Text("Unknown"), Builtin("Unknown"))
}

func TestIcon_JSONRoundTrip(t *testing.T) {
	type holder struct {
		Icon Icon `json:"icon"`
	}

	data, err := json.Marshal(holder{Icon: Builtin("Cloud")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"icon":"Cloud"}`, string(data))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"icon":"https://x.io/a.png"}`), &h))
	assert.Equal(t, KindImage, h.Icon.Kind)

	require.NoError(t, json.Unmarshal([]byte(`{"icon":null}`), &h))
	assert.True(t, h.Icon.IsZero())
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 16, G: 185, B: 129, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestFromUpload_ScalesDown(t *testing.T) {
	icon, err := FromUpload(bytes.NewReader(encodePNG(t, 400, 200)), 0)
	require.NoError(t, err)
	assert.Equal(t, KindImage, icon.Kind)

	img := decodeDataURI(t, icon.Value)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Equal(t, KindImage, Resolve(icon.Value).Kind)
}

func TestFromUpload_KeepsSmallImages(t *testing.T) {
	icon, err := FromUpload(bytes.NewReader(encodePNG(t, 32, 48)), 64)
	require.NoError(t, err)

	img := decodeDataURI(t, icon.Value)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestFromUpload_InvalidImage(t *testing.T) {
	_, err := FromUpload(strings.NewReader("not an image"), 0)
	require.Error(t, err)
	var uploadErr *UploadError
	assert.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, err.Error(), "failed to decode image")
}
