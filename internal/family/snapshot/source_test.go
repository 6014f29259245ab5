package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

const familyJSON = `{
	"family": {"familyQuality": {"cntMem": 2, "cntChild": 1, "riskDetail": "INNNNNN"}},
	"familyMemberList": [
		{"iin": "850505400111", "fullName": "ПЕТРОВА АННА"},
		{"iin": "900101300123", "fullName": "ПЕТРОВ ИВАН"}
	],
	"addressRu": "г. Астана"
}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"family/900101300123.json": {Data: []byte(familyJSON)},
		"person/900101300123.json": {Data: []byte(`{"personSourceList":[{"status":{"nameRu":"Пенсионеры"}}]}`)},
		"family/111111111111.json": {Data: []byte(`{"family": null, "familyMemberList": []}`)},
		"family/222222222222.json": {Data: []byte(`{not json`)},
		"cohort/900101300123.json": {Data: []byte(`{"total": 0}`)},
	}
}

func TestSource(t *testing.T) {
	src, err := New(testFS())
	require.NoError(t, err)
	ctx := context.Background()
	sess := ports.Session{Token: snapshotToken}

	t.Run("login needs no credentials", func(t *testing.T) {
		res, err := src.Login(ctx, ports.Credentials{})
		require.NoError(t, err)
		assert.Equal(t, snapshotToken, res.AccessToken)
	})

	t.Run("recorded family", func(t *testing.T) {
		info, err := src.FamilyInfo(ctx, sess, "900101300123")
		require.NoError(t, err)
		require.NotNil(t, info.Family)
		assert.Equal(t, 2, info.Family.FamilyQuality.CntMem)
		assert.Len(t, info.FamilyMemberList, 2)
	})

	t.Run("missing family reads as null", func(t *testing.T) {
		info, err := src.FamilyInfo(ctx, sess, "333333333333")
		require.NoError(t, err)
		assert.Nil(t, info.Family)
	})

	t.Run("recorded null family", func(t *testing.T) {
		info, err := src.FamilyInfo(ctx, sess, "111111111111")
		require.NoError(t, err)
		assert.Nil(t, info.Family)
	})

	t.Run("malformed recording is a decode error", func(t *testing.T) {
		_, err := src.FamilyInfo(ctx, sess, "222222222222")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDecode), "got %v", err)
	})

	t.Run("person without recording has no statuses", func(t *testing.T) {
		pd, err := src.PersonDetails(ctx, sess, "850505400111")
		require.NoError(t, err)
		assert.Empty(t, pd.StatusNames())
	})

	t.Run("person with recording", func(t *testing.T) {
		pd, err := src.PersonDetails(ctx, sess, "900101300123")
		require.NoError(t, err)
		assert.Equal(t, []string{"Пенсионеры"}, pd.StatusNames())
	})

	t.Run("cohort total", func(t *testing.T) {
		total, err := src.CohortTotal(ctx, sess, "900101300123")
		require.NoError(t, err)
		assert.Equal(t, 0, total, "recorded total wins")

		total, err = src.CohortTotal(ctx, sess, "111111111111")
		require.NoError(t, err)
		assert.Equal(t, 1, total, "recorded family counts as a match")

		total, err = src.CohortTotal(ctx, sess, "333333333333")
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		_, err := src.FamilyInfo(ctx, sess, "../secret")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.FamilyInfo(cctx, sess, "900101300123")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "family"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "family", "900101300123.json"), []byte(familyJSON), 0o600))

	src, err := Open(dir)
	require.NoError(t, err)

	info, err := src.FamilyInfo(context.Background(), ports.Session{}, "900101300123")
	require.NoError(t, err)
	assert.NotNil(t, info.Family)

	_, err = Open(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
