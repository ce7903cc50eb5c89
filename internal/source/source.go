// =============================================================================
// Cart Parser - Source Readers
// =============================================================================
//
// This module resolves a source name to the raw text of a cart file. The
// parser only depends on the Reader interface; the concrete readers here
// cover the places a cart file can come from:
//
//   | Source form            | Reader       |
//   |------------------------|--------------|
//   | ./cart.csv             | FileReader   |
//   | ./cart.xlsx            | XLSXReader   |
//   | https://host/cart.csv  | HTTPReader   |
//   | s3://bucket/cart.csv   | S3Reader     |
//
// Errors from these readers are I/O errors, not validation errors. They are
// returned as-is (wrapped with context) and the caller decides what to do.
//
// =============================================================================

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Reader resolves a source name to raw text.
type Reader interface {
	ReadFile(ctx context.Context, name string) (string, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, name string) (string, error)

// ReadFile calls f.
func (f ReaderFunc) ReadFile(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// =============================================================================
// FILE READER
// =============================================================================

// FileReader reads sources from the local file system.
// Paths ending in .xlsx are read through XLSXReader.
type FileReader struct {
	XLSX XLSXReader
}

// ReadFile implements Reader.
func (r FileReader) ReadFile(ctx context.Context, name string) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return r.XLSX.ReadFile(ctx, name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver dispatches on the source scheme.
// The S3 reader is created on first use so local runs never load AWS config.
type Resolver struct {
	File FileReader
	HTTP *HTTPReader

	// S3 is used for s3:// sources when set.
	S3 Reader

	// NewS3 builds the S3 reader on first use when S3 is nil.
	NewS3 func(ctx context.Context) (Reader, error)

	s3Mu sync.Mutex
}

// NewResolver returns a Resolver with default file and HTTP readers.
func NewResolver(httpReader *HTTPReader, newS3 func(ctx context.Context) (Reader, error)) *Resolver {
	if httpReader == nil {
		httpReader = NewHTTPReader(0)
	}
	return &Resolver{
		HTTP:  httpReader,
		NewS3: newS3,
	}
}

// ReadFile implements Reader.
func (r *Resolver) ReadFile(ctx context.Context, name string) (string, error) {
	switch {
	case strings.HasPrefix(name, "s3://"):
		s3Reader, err := r.s3Reader(ctx)
		if err != nil {
			return "", err
		}
		return s3Reader.ReadFile(ctx, name)

	case strings.HasPrefix(name, "http://"), strings.HasPrefix(name, "https://"):
		httpReader := r.HTTP
		if httpReader == nil {
			httpReader = NewHTTPReader(0)
		}
		return httpReader.ReadFile(ctx, name)

	default:
		return r.File.ReadFile(ctx, name)
	}
}

// s3Reader returns the S3 reader, building it on first use. A failed build
// is not cached, so the next s3:// source tries again.
func (r *Resolver) s3Reader(ctx context.Context) (Reader, error) {
	r.s3Mu.Lock()
	defer r.s3Mu.Unlock()

	if r.S3 != nil {
		return r.S3, nil
	}
	if r.NewS3 == nil {
		return nil, fmt.Errorf("s3 sources are not configured")
	}

	reader, err := r.NewS3(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 reader: %w", err)
	}
	r.S3 = reader
	return reader, nil
}
