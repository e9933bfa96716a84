package plink

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZlib:  {0x78, 0x9c}, // Default compression level only
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// bzip2 streams continue "BZh" with a block size digit and then either the
// magic of the first block or, for empty input, the end of stream marker.
// Plain text can easily start with "BZh", so all of it is checked.
var (
	bzip2BlockMagic = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EndMagic   = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

// sniffLen is how many leading bytes DetectDataType needs to see.
const sniffLen = 10

// DetectDataType matches the leading bytes of a stream against the known
// compression signatures. Anything unrecognized is assumed to be plain text.
func DetectDataType(head []byte) DataType {
	for dt, sig := range byteCodeSigs {
		if !bytes.HasPrefix(head, sig) {
			continue
		}
		if dt == DataTypeBZip2 && !isBZip2Header(head) {
			continue
		}
		return dt
	}

	return DataTypeNoCompression
}

func isBZip2Header(head []byte) bool {
	if len(head) < sniffLen {
		return false
	}
	if head[3] < '1' || head[3] > '9' {
		return false
	}
	return bytes.Equal(head[4:sniffLen], bzip2BlockMagic) || bytes.Equal(head[4:sniffLen], bzip2EndMagic)
}

// MaybeDecompressReadCloser sniffs the first bytes of rc and, if they match a
// known compression format, returns a reader over the decompressed stream.
// Closing the result closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		rc.Close()
		return nil, err
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = gz
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// Only the first member of an archive is read.
		if _, err := zr.Next(); err != nil {
			rc.Close()
			return nil, err
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = xr
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = zr
	default:
		r = br
	}

	return &decompressedReadCloser{Reader: r, underlying: rc}, nil
}

// decompressedReadCloser closes the underlying stream, and the decompressor
// too when it has a Close method.
type decompressedReadCloser struct {
	io.Reader
	underlying io.Closer
}

func (c *decompressedReadCloser) Close() error {
	var err error
	if closer, ok := c.Reader.(io.Closer); ok {
		err = closer.Close()
	}

	if uerr := c.underlying.Close(); err == nil {
		err = uerr
	}

	return err
}
