package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewReferenceFormat(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("IST", 5*3600+1800))
	ref, err := newReference(now)
	require.NoError(t, err)

	assert.True(t, ValidReference(ref), ref)
	assert.True(t, strings.HasPrefix(ref, "ORD-20240309083507-"), ref)
}

func TestValidReference(t *testing.T) {
	assert.True(t, ValidReference("ORD-20240101120000-0A1B2C3D"))
	assert.False(t, ValidReference("ORD-20240101120000-0a1b2c3d"))
	assert.False(t, ValidReference("ORD-2024010112000-0A1B2C3D"))
	assert.False(t, ValidReference("ORD-20240101120000-0A1B2C3"))
	assert.False(t, ValidReference(""))
}

func TestGenerateReferenceUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 500).Draw(t, "n")
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			ref, err := GenerateReference()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !ValidReference(ref) {
				t.Fatalf("malformed reference %q", ref)
			}
			if _, dup := seen[ref]; dup {
				t.Fatalf("duplicate reference %q after %d draws", ref, i)
			}
			seen[ref] = struct{}{}
		}
	})
}
