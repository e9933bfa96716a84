package plink

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
)

type nopCloser struct {
	io.Reader
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func TestDetectDataType(t *testing.T) {
	for _, v := range []struct {
		head     []byte
		expected DataType
	}{
		{[]byte{0x1f, 0x8b, 0x08, 0x00}, DataTypeGzip},
		{[]byte("BZh91AY&SY"), DataTypeBZip2},
		{[]byte{'B', 'Z', 'h', '1', 0x17, 0x72, 0x45, 0x38, 0x50, 0x90}, DataTypeBZip2},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		{[]byte{0x50, 0x4b, 0x03, 0x04}, DataTypeZip},
		{[]byte("1 rs1 0 1 A G"), DataTypeNoCompression},
		{[]byte("BZh1 IND1 0 0 1 1"), DataTypeNoCompression},
		{[]byte("BZh91AY"), DataTypeNoCompression},
	} {
		if got := DetectDataType(v.head); got != v.expected {
			t.Errorf("%q: got %d, expected %d", v.head, got, v.expected)
		}
	}
}

func TestMaybeDecompressReadCloser(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte("F I 0 0 1 1\n"))
	zw.Close()

	for name, input := range map[string][]byte{
		"plain": []byte("F I 0 0 1 1\n"),
		"zlib":  buf.Bytes(),
		"short": []byte("F"),
	} {
		underlying := &nopCloser{Reader: bytes.NewReader(input)}
		rc, err := MaybeDecompressReadCloser(underlying)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		out, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		rc.Close()

		if name != "short" && string(out) != "F I 0 0 1 1\n" {
			t.Errorf("%s: got %q", name, out)
		}
		if !underlying.closed {
			t.Errorf("%s: underlying reader was not closed", name)
		}
	}
}
