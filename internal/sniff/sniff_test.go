package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feichai0017/document-intake/internal/models"
)

func TestSniff(t *testing.T) {
	cases := []struct {
		path string
		want models.ContentKind
	}{
		{"invoice.pdf", models.KindPDF},
		{"scan.jpg", models.KindImage},
		{"scan.jpeg", models.KindImage},
		{"scan.png", models.KindImage},
		{"scan.tif", models.KindImage},
		{"scan.tiff", models.KindImage},
		{"notes.txt", models.KindText},
		{"archive.zip", models.KindUnknown},
		{"noextension", models.KindUnknown},
		{"", models.KindUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Sniff(tc.path), "path %q", tc.path)
	}
}

func TestSniffCaseInsensitive(t *testing.T) {
	assert.Equal(t, models.KindPDF, Sniff("REPORT.PDF"))
	assert.Equal(t, models.KindImage, Sniff("photo.JPeG"))
	assert.Equal(t, models.KindText, Sniff("/tmp/UPPER.TXT"))
}
