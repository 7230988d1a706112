package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificate(t *testing.T) {
	doc, err := GenerateCertificate("student@example.com", "Intro to Go", "March 9, 2024")
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "output should be a PDF document")
}

func TestGenerateCertificateLongTitle(t *testing.T) {
	title := "A Very Long Course Title That Should Wrap Across Multiple Lines Without Breaking The Layout"
	doc, err := GenerateCertificate("student@example.com", title, "March 9, 2024")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
