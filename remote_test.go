package plink

import (
	"bytes"
	"context"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func TestObjectHandle(t *testing.T) {
	client, err := storage.NewClient(context.Background(), option.WithoutAuthentication())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if !isGoogleStorage("gs://bucket/a/b.bed", client) {
		t.Error("gs:// path with a client should be remote")
	}
	if isGoogleStorage("gs://bucket/a/b.bed", nil) || isGoogleStorage("/local/b.bed", client) {
		t.Error("Local reads expected")
	}

	handle, err := objectHandle("gs://bucket/a/b.bed", client)
	if err != nil {
		t.Fatal(err)
	}
	if handle.BucketName() != "bucket" || handle.ObjectName() != "a/b.bed" {
		t.Errorf("Got %s / %s", handle.BucketName(), handle.ObjectName())
	}

	if _, err := objectHandle("gs://bucketonly", client); err == nil {
		t.Error("Expected an error for a path without an object")
	}
}

type memReaderAt struct {
	*bytes.Reader
	closed bool
}

func (m *memReaderAt) Close() error {
	m.closed = true
	return nil
}

// Sources that are not local files are read into memory rather than mapped.
func TestBEDFromReaderAt(t *testing.T) {
	raw := append(append([]byte{}, bedMagic...), 0b00_00_11_10, 0b00_00_00_01)
	src := &memReaderAt{Reader: bytes.NewReader(raw)}

	b, err := newBED("remote.bed", src, int64(len(raw)), 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		s, m     int
		expected Genotype
	}{
		{0, 0, Heterozygous},
		{1, 0, HomozygousA2},
		{0, 1, Missing},
		{1, 1, HomozygousA1},
	} {
		if got, err := b.Call(v.s, v.m); err != nil || got != v.expected {
			t.Errorf("(%d, %d): got %s, %v", v.s, v.m, got, err)
		}
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.closed {
		t.Error("Close did not release the source")
	}

	// Closing twice is harmless.
	if err := b.Close(); err != nil {
		t.Error(err)
	}
}
