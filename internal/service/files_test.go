package service

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"testing"

	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) *string {
	return strPtr(base64.StdEncoding.EncodeToString([]byte(s)))
}

func TestCreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		in  CreateFileInput
		msg string
	}{
		{CreateFileInput{Type: model.TypeFile, Data: b64("x")}, "Missing name"},
		{CreateFileInput{Name: "a"}, "Missing type"},
		{CreateFileInput{Name: "a", Type: "video", Data: b64("x")}, "Missing type"},
		{CreateFileInput{Name: "f", Type: model.TypeFile}, "Missing data"},
		{CreateFileInput{Name: "f", Type: model.TypeFile, Data: strPtr("%%%")}, "Invalid data"},
		{CreateFileInput{Name: "f", Type: model.TypeFile, Data: b64("x"), ParentID: model.ParentOf("AAAAAAAAAAAAAAAA")}, "Parent not found"},
		{CreateFileInput{Name: "f", Type: model.TypeFile, Data: b64("x"), ParentID: model.ParentOf("bad id")}, "Parent not found"},
	}

	for _, c := range cases {
		_, err := e.files.Create(ctx, "alice", c.in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, c.msg)
		assert.Equal(t, c.msg, verr.Msg)
	}

	n, err := e.store.CountFiles(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateFolderAndChild(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	folder, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "images", Type: model.TypeFolder})
	require.NoError(t, err)
	assert.Empty(t, folder.LocalPath)
	assert.True(t, folder.ParentID.IsRoot())
	assert.False(t, folder.IsPublic)

	child, err := e.files.Create(ctx, "alice", CreateFileInput{
		Name:     "hello.txt",
		Type:     model.TypeFile,
		ParentID: model.ParentOf(folder.ID),
		Data:     b64("Hello Webstack!\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, child.ParentID.ID())

	data, err := os.ReadFile(child.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello Webstack!\n", string(data))

	_, err = e.files.Create(ctx, "alice", CreateFileInput{
		Name:     "nested.txt",
		Type:     model.TypeFile,
		ParentID: model.ParentOf(child.ID),
		Data:     b64("x"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Parent is not a folder", verr.Msg)

	root, err := e.files.Index(ctx, "alice", model.Root(), 0)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, folder.ID, root[0].ID)

	inside, err := e.files.Index(ctx, "alice", model.ParentOf(folder.ID), 0)
	require.NoError(t, err)
	require.Len(t, inside, 1)
	assert.Equal(t, child.ID, inside[0].ID)

	// No thumbnails for non images
	assert.Empty(t, e.queue.thumbnails)
}

func TestCreateInForeignFolder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	folder, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "shared", Type: model.TypeFolder})
	require.NoError(t, err)

	f, err := e.files.Create(ctx, "bob", CreateFileInput{
		Name:     "bob.txt",
		Type:     model.TypeFile,
		ParentID: model.ParentOf(folder.ID),
		Data:     b64("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", f.UserID)
}

func TestCreateImageEnqueuesThumbnail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	f, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "a.png", Type: model.TypeImage, Data: b64("png")})
	require.NoError(t, err)

	assert.Equal(t, []queue.ThumbnailJob{{FileID: f.ID, UserID: "alice"}}, e.queue.thumbnails)
}

func TestCreateImageEnqueueFailureIsIgnored(t *testing.T) {
	e := newEnv(t)
	e.queue.err = errors.New("queue down")

	f, err := e.files.Create(context.Background(), "alice", CreateFileInput{Name: "a.png", Type: model.TypeImage, Data: b64("png")})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
}

// failingInsert lets every call through except InsertFile
type failingInsert struct {
	store.Store
}

func (failingInsert) InsertFile(context.Context, *model.File) error {
	return errors.New("db down")
}

func TestCreateRemovesBlobWhenInsertFails(t *testing.T) {
	e := newEnv(t)
	files := NewFiles(failingInsert{e.store}, e.blobs, e.queue)

	_, err := files.Create(context.Background(), "alice", CreateFileInput{Name: "a.txt", Type: model.TypeFile, Data: b64("x")})
	require.Error(t, err)

	entries, err := os.ReadDir(e.blobs.Root())
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestShowIsOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	f, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "a.txt", Type: model.TypeFile, Data: b64("x"), IsPublic: true})
	require.NoError(t, err)

	got, err := e.files.Show(ctx, "alice", f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	_, err = e.files.Show(ctx, "bob", f.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.files.Show(ctx, "alice", "AAAAAAAAAAAAAAAA")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.files.Show(ctx, "alice", "not an id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexPagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var ids []string
	for range 45 {
		f, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "f", Type: model.TypeFolder})
		require.NoError(t, err)
		ids = append(ids, f.ID)
	}

	// Noise from another user
	_, err := e.files.Create(ctx, "bob", CreateFileInput{Name: "f", Type: model.TypeFolder})
	require.NoError(t, err)

	for page, want := range [][]string{ids[:20], ids[20:40], ids[40:], {}} {
		entries, err := e.files.Index(ctx, "alice", model.Root(), page)
		require.NoError(t, err)
		require.NotNil(t, entries)

		got := []string{}
		for _, f := range entries {
			got = append(got, f.ID)
		}

		assert.Equal(t, want, got, "page %d", page)
	}

	entries, err := e.files.Index(ctx, "alice", model.Root(), -3)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestSetVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	f, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "a.txt", Type: model.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	_, err = e.files.SetVisibility(ctx, "bob", f.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := e.files.SetVisibility(ctx, "alice", f.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	stored, err := e.store.FileByID(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublic)

	got, err = e.files.SetVisibility(ctx, "alice", f.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)
}

func TestContent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	private, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "hello.txt", Type: model.TypeFile, Data: b64("Hello Webstack!\n")})
	require.NoError(t, err)

	public, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "pic.png", Type: model.TypeImage, Data: b64("not really a png"), IsPublic: true})
	require.NoError(t, err)

	folder, err := e.files.Create(ctx, "alice", CreateFileInput{Name: "dir", Type: model.TypeFolder, IsPublic: true})
	require.NoError(t, err)

	c, err := e.files.Content(ctx, "alice", private.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello Webstack!\n", string(c.Data))
	assert.Equal(t, "text/plain; charset=utf-8", c.ContentType)

	// Private content is indistinguishable from a missing record
	_, err = e.files.Content(ctx, "bob", private.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.files.Content(ctx, "", private.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.files.Content(ctx, "", "AAAAAAAAAAAAAAAA", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	c, err = e.files.Content(ctx, "", public.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", c.ContentType)

	_, err = e.files.Content(ctx, "alice", folder.ID, 0)
	assert.ErrorIs(t, err, ErrFolderNoContent)

	// No thumbnail was generated
	_, err = e.files.Content(ctx, "", public.ID, 250)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.files.Content(ctx, "", public.ID, 42)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid size", verr.Msg)

	// Blob removed behind our back
	require.NoError(t, os.Remove(private.LocalPath))
	_, err = e.files.Content(ctx, "alice", private.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentTypeFallback(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("report", []byte("%PDF-1.4\n")))
	assert.Equal(t, "text/plain; charset=utf-8", contentType("README", []byte("hello")))
}
