// Package compress shrinks payloads before embedding. The frame format is
// unaware of it: a compressed payload is just a payload that starts with the
// gzip magic.
package compress

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
)

var log = logger.GetStegoLogger()

// Compress gzips data. The compressed form is returned only if it is smaller;
// the boolean reports which form was returned.
func Compress(data []byte) ([]byte, bool, error) {
	if len(data) == 0 {
		return data, false, nil
	}

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		return nil, false, oops.Wrapf(err, "compression write failed")
	}
	if err := writer.Close(); err != nil {
		return nil, false, oops.Wrapf(err, "compression close failed")
	}

	compressed := buf.Bytes()
	if len(compressed) < len(data) {
		log.WithFields(logger.Fields{
			"original":   len(data),
			"compressed": len(compressed),
		}).Debug("Compressed payload")
		return compressed, true, nil
	}

	log.WithField("original", len(data)).Debug("Compression not beneficial")
	return data, false, nil
}

// IsCompressed reports whether data starts with the gzip magic 1f8b.
func IsCompressed(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Decompress inflates data when it carries the gzip magic and is a valid
// stream; otherwise data is returned unchanged.
func Decompress(data []byte) ([]byte, bool) {
	if !IsCompressed(data) {
		return data, false
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		log.WithError(err).Debug("Gzip magic present but header invalid")
		return data, false
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		log.WithError(err).Debug("Gzip stream invalid")
		return data, false
	}

	log.WithFields(logger.Fields{
		"compressed":   len(data),
		"decompressed": len(decompressed),
	}).Debug("Decompressed payload")
	return decompressed, true
}
