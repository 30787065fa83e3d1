package objectkey

// Package objectkey derives and validates storage keys for uploaded
// documents. All managed objects live under a fixed namespace prefix so that
// client-reported references can be checked against it.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Namespace is the fixed key prefix under which all managed documents are stored.
const Namespace = "documents"

var (
	ErrClinicIDRequired = errors.New("clinic_id is required")
	ErrFileNameRequired = errors.New("file_name is required")
	ErrMalformedRef     = errors.New("object reference is malformed")
	ErrOutsideNamespace = errors.New("object reference is outside the managed namespace")
)

// Key identifies a single stored object. ObjectID is minted once per upload
// request and never reused.
type Key struct {
	ClinicID string
	ObjectID string
	FileName string
}

// Ref returns the canonical object reference documents/<clinic_id>/<object_id>/<file_name>.
func (k Key) Ref() string {
	return fmt.Sprintf("%s/%s/%s/%s", Namespace, k.ClinicID, k.ObjectID, k.FileName)
}

// New mints a fresh Key for the given clinic and file name. The object ID is
// a random 128-bit UUID, so collisions across calls are cryptographically
// negligible. The file name is sanitized to its final path element.
func New(clinicID, fileName string) (Key, error) {
	if strings.TrimSpace(clinicID) == "" {
		return Key{}, ErrClinicIDRequired
	}
	name := SanitizeFileName(fileName)
	if strings.TrimSpace(fileName) == "" {
		return Key{}, ErrFileNameRequired
	}
	return Key{
		ClinicID: clinicID,
		ObjectID: uuid.NewString(),
		FileName: name,
	}, nil
}

// Parse decomposes a client-supplied object reference and validates its shape.
// References produced by New always round-trip through Parse; anything New
// could not have issued, including a file-name segment with nested path
// elements, is rejected.
func Parse(ref string) (Key, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 {
		return Key{}, ErrMalformedRef
	}
	if parts[0] != Namespace {
		return Key{}, ErrOutsideNamespace
	}
	if parts[1] == "" || parts[2] == "" || parts[3] == "" {
		return Key{}, ErrMalformedRef
	}
	if !validObjectID(parts[2]) {
		return Key{}, ErrMalformedRef
	}
	return Key{ClinicID: parts[1], ObjectID: parts[2], FileName: parts[3]}, nil
}

// SanitizeFileName strips any path components from a caller-supplied file
// name, keeping only the final element. Empty input becomes "upload".
func SanitizeFileName(fileName string) string {
	trimmed := strings.TrimSpace(fileName)
	normalized := strings.ReplaceAll(trimmed, "\\", "/")
	segs := strings.Split(normalized, "/")
	name := segs[len(segs)-1]
	if name == "" {
		return "upload"
	}
	return name
}

func validObjectID(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
