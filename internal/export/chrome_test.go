package export

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, DefaultOptions(), opts)

	custom := Options{Mode: ModeVector, Scale: 3, Quality: 0.5, PaperWidth: 8.27, PaperHeight: 11.69, ChromePath: "/usr/bin/chromium", Timeout: time.Second}
	assert.Equal(t, custom, custom.withDefaults())

	assert.Equal(t, 0.98, Options{Quality: 4}.withDefaults().Quality)
	assert.Equal(t, ModeRaster, Options{Mode: "sepia"}.withDefaults().Mode)
}

func TestOptions_PageGeometry(t *testing.T) {
	w, h := DefaultOptions().pagePixels()
	assert.Equal(t, int64(816), w)
	assert.Equal(t, int64(1056), h)
	assert.Equal(t, int64(98), DefaultOptions().jpegQuality())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 1056))
	assert.Equal(t, 1, pageCount(1056, 1056))
	assert.Equal(t, 2, pageCount(1057, 1056))
	assert.Equal(t, 3, pageCount(3000, 1056))
}

func TestPageSheet(t *testing.T) {
	sheet := pageSheet([][]byte{[]byte("one"), []byte("two")}, 8.5, 11)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sheet))
	require.NoError(t, err)
	imgs := doc.Find("img")
	require.Equal(t, 2, imgs.Length())
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte("two")), imgs.Eq(1).AttrOr("src", ""))
	assert.Contains(t, sheet, "@page{size:8.5in 11in;margin:0}")
}

func TestNewChromeRenderer(t *testing.T) {
	r := NewChromeRenderer(Options{ChromePath: "/opt/chrome"}, nil)
	assert.Equal(t, "/opt/chrome", r.Options().ChromePath)
	assert.Equal(t, 2.0, r.Options().Scale)

	var _ PDFRenderer = r
}
