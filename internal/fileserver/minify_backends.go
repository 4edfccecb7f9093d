package fileserver

import (
	"bytes"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

func init() {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)

	RegisterMinifier("text/css", func(src []byte) ([]byte, error) {
		return runMinifier(m, "text/css", src)
	})
	RegisterMinifier("application/javascript", func(src []byte) ([]byte, error) {
		return runMinifier(m, "application/javascript", src)
	})
}

func runMinifier(m *minify.M, mediatype string, src []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := m.Minify(mediatype, &out, bytes.NewReader(src)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
