package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "statements/u1/march.csv", ObjectName("statements", "u1", "march.csv"))
	assert.Equal(t, "u1/march.pdf", ObjectName("", "u1", `C:\Users\me\march.pdf`))
	assert.Equal(t, "statements/u1/statement", ObjectName("statements", "u1", ""))
	assert.Equal(t, "statements/u1/passwd", ObjectName("statements", "u1", "../../etc/passwd"))
}

func TestParseURI(t *testing.T) {
	bucket, object, err := ParseURI("gs://fintrack-archive/statements/u1/march.csv")
	require.NoError(t, err)
	assert.Equal(t, "fintrack-archive", bucket)
	assert.Equal(t, "statements/u1/march.csv", object)

	for _, bad := range []string{"", "s3://bucket/key", "gs://bucket", "gs:///key"} {
		_, _, err := ParseURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("a.PDF"))
	assert.Equal(t, "text/csv", contentType("a.csv"))
	assert.Equal(t, "application/octet-stream", contentType("a"))
}
