package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedSubmissionExtension(t *testing.T) {
	for _, name := range []string{"report.pdf", "notes.TXT", "archive.zip", "photo.JPEG"} {
		require.True(t, AllowedSubmissionExtension(name), "expected %q to be allowed", name)
	}
	for _, name := range []string{"script.sh", "binary.exe", "noextension", "page.html"} {
		require.False(t, AllowedSubmissionExtension(name), "expected %q to be rejected", name)
	}
}

func TestAllowedPhotoExtension(t *testing.T) {
	require.True(t, AllowedPhotoExtension("avatar.png"))
	require.True(t, AllowedPhotoExtension("avatar.WEBP"))
	require.False(t, AllowedPhotoExtension("avatar.pdf"))
	require.False(t, AllowedPhotoExtension("avatar"))
}

func TestSaveSubmission(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	stored, err := store.SaveSubmission(7, 3, "My Report (final).pdf", strings.NewReader("content"))
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(stored.Name, ".pdf"))
	require.Contains(t, stored.Name, "MyReportfinal")
	require.True(t, strings.HasPrefix(stored.RelPath, "task-submissions/7/"))

	files, err := store.ListSubmissions(7)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, stored.Name, files[0].Name)
	require.Equal(t, int64(len("content")), files[0].Size)
}

func TestSaveSubmission_NoCollisions(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	first, err := store.SaveSubmission(1, 2, "draft.txt", strings.NewReader("v1"))
	require.NoError(t, err)
	second, err := store.SaveSubmission(1, 2, "draft.txt", strings.NewReader("v2"))
	require.NoError(t, err)

	require.NotEqual(t, first.Name, second.Name)

	files, err := store.ListSubmissions(1)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestListSubmissions_MissingDirectory(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	files, err := store.ListSubmissions(42)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestRemoveSubmissions(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	_, err := store.SaveSubmission(9, 1, "work.zip", strings.NewReader("zipbytes"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveSubmissions(9))

	files, err := store.ListSubmissions(9)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestSaveProfilePhoto_ReplacesPrevious(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	_, err := store.SaveProfilePhoto(4, "old.png", strings.NewReader("old"))
	require.NoError(t, err)

	latest, err := store.SaveProfilePhoto(4, "new.jpg", strings.NewReader("new"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(latest.Name, ".jpg"))

	photo, found, err := store.LatestProfilePhoto(4)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, latest.Name, photo.Name)
}

func TestLatestProfilePhoto_None(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	_, found, err := store.LatestProfilePhoto(11)
	require.NoError(t, err)
	require.False(t, found)
}
