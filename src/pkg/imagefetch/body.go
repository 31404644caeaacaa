package imagefetch

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Get body of http.Response, handle compression.

Reads at most maxBytes of decoded content; anything larger is an error so a
runaway download never lands in memory.
*/
func readBody(resp *http.Response, urlStr string, maxBytes int64) (body []byte, e *xerr.Error) {
	var reader io.Reader
	contentEncoding := resp.Header.Get("Content-Encoding")

	tl.Log(tl.Verbose5, palette.BlueDim, "Get body (content encoding is '%s') for '%s'", contentEncoding, urlStr)
	switch contentEncoding {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return body, xerr.NewError(err, "Unable to get gzip reader", urlStr)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		flateReader := flate.NewReader(resp.Body)
		defer flateReader.Close()
		reader = flateReader
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "", "none", "identity":
		reader = resp.Body
	default:
		reader = resp.Body
		tl.Log(tl.Warning, palette.YellowDim, "Unsupported %s: '%s'", "Content-Encoding", contentEncoding)
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return body, xerr.NewError(err, "Failed to read response body", urlStr)
	}
	if int64(len(body)) > maxBytes {
		return nil, xerr.NewError(fmt.Errorf("body exceeds %d bytes", maxBytes), "Response body too large", urlStr)
	}
	tl.Log(tl.Verbose6, palette.GreenDim, "Got body length %v (content encoding is '%s') for '%s'", len(body), contentEncoding, urlStr)

	return body, nil
}
