package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/repositories"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	"github.com/kalash-creations/go-bangles/app/utils/imagestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const appURL = "http://localhost:3001"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func newCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock := newMockDB(t)
	root := t.TempDir()
	svc := NewCatalogService(db, repositories.NewBangleRepository(db), repositories.NewBangleVariantRepository(db), imagestore.NewStore(root), appURL)
	return svc, mock, root
}

func uploadHeader(t *testing.T, field string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "upload.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

// seedFile plants an existing stored image and returns its relative path.
func seedFile(t *testing.T, root, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, dir, name), pngBytes, 0o644))
	return imagestore.URLPrefix + "/" + dir + "/" + name
}

func bangleCountRows(count int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(count)
}

func bangleRow(id, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "category_id", "price", "description", "available_sizes", "material"}).
		AddRow(id, name, "kundan", "2999.00", "A bridal set.", `["2.4","2.6"]`, "Brass")
}

func variantRowsFor(bangleID string, variants ...models.BangleColorVariant) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "bangle_id", "color_name", "hex_color", "image_url", "position"})
	for _, v := range variants {
		rows.AddRow(v.ID, bangleID, v.ColorName, v.HexColor, v.ImageURL, v.Position)
	}
	return rows
}

func TestCreateBangleRequiresCoreFields(t *testing.T) {
	svc, mock, _ := newCatalogService(t)

	_, err := svc.CreateBangle(context.Background(), CreateBangleInput{Name: "No ID"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusCode(err))

	// A zero price counts as missing, like an absent price field.
	_, err = svc.CreateBangle(context.Background(), CreateBangleInput{
		ID: "kundan001", Name: "Royal Kundan Set", CategoryID: "kundan",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBangleConflictOnDuplicateID(t *testing.T) {
	svc, mock, root := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangles`").WillReturnRows(bangleCountRows(1))
	mock.ExpectRollback()

	_, err := svc.CreateBangle(context.Background(), CreateBangleInput{
		ID: "kundan001", Name: "Royal Kundan Set", CategoryID: "kundan", Price: decimal.NewFromInt(2999),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root))
}

// A variant-id collision mid-create rolls everything back and deletes every
// file saved for this request, including the already-written base image.
func TestCreateBangleVariantConflictCleansUpUploads(t *testing.T) {
	svc, mock, root := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangles`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangles`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangle_color_variants`").WillReturnRows(bangleCountRows(1))
	mock.ExpectRollback()

	_, err := svc.CreateBangle(context.Background(), CreateBangleInput{
		ID: "kundan001", Name: "Royal Kundan Set", CategoryID: "kundan", Price: decimal.NewFromInt(2999),
		BaseImageFile: uploadHeader(t, "baseImageFile", pngBytes),
		Variants:      []VariantInput{{ID: "taken-id", ColorName: "Ruby Red"}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root), "no uploaded file may survive a failed create")
}

func TestCreateBangleInsertsVariantsInSubmissionOrder(t *testing.T) {
	svc, mock, _ := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangles`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangles`").WillReturnResult(sqlmock.NewResult(0, 1))
	// First descriptor lacks a color name and is skipped, not inserted.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangle_color_variants`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangle_color_variants`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangle_color_variants`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangle_color_variants`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(bangleRow("kundan001", "Royal Kundan Set"))
	mock.ExpectQuery("SELECT \\* FROM `bangle_color_variants`").WillReturnRows(variantRowsFor("kundan001",
		models.BangleColorVariant{ID: "k001-red", ColorName: "Ruby Red", Position: 0},
		models.BangleColorVariant{ID: "k001-blue", ColorName: "Sapphire Blue", Position: 1},
	))

	bangle, err := svc.CreateBangle(context.Background(), CreateBangleInput{
		ID: "kundan001", Name: "Royal Kundan Set", CategoryID: "kundan", Price: decimal.NewFromInt(2999),
		Variants: []VariantInput{
			{ID: "skipped", ColorName: ""},
			{ID: "k001-red", ColorName: "Ruby Red"},
			{ID: "k001-blue", ColorName: "Sapphire Blue"},
		},
	})
	require.NoError(t, err)
	require.Len(t, bangle.ColorVariants, 2)
	assert.Equal(t, "k001-red", bangle.ColorVariants[0].ID)
	assert.Equal(t, "k001-blue", bangle.ColorVariants[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBangleNotFoundCleansUpUpload(t *testing.T) {
	svc, mock, root := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.UpdateBangle(context.Background(), "missing", UpdateBangleInput{
		BaseImageFile: uploadHeader(t, "baseImageFile", pngBytes),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root))
}

// Full-replace reconciliation: every old variant image file is deleted even
// when the replacement set carries different ids.
func TestUpdateBangleReplacesVariantSetAndDeletesOldImages(t *testing.T) {
	svc, mock, root := newCatalogService(t)
	oldImage := seedFile(t, root, imagestore.DirVariants, "red.png")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(bangleRow("kundan001", "Royal Kundan Set"))
	mock.ExpectQuery("SELECT \\* FROM `bangle_color_variants`").WillReturnRows(variantRowsFor("kundan001",
		models.BangleColorVariant{ID: "k001-red", ColorName: "Ruby Red", ImageURL: oldImage, Position: 0}))
	mock.ExpectExec("UPDATE `bangles` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `bangle_color_variants`").WillReturnRows(variantRowsFor("kundan001",
		models.BangleColorVariant{ID: "k001-red", ColorName: "Ruby Red", ImageURL: oldImage, Position: 0}))
	mock.ExpectExec("DELETE FROM `bangle_color_variants`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangle_color_variants`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangle_color_variants`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(bangleRow("kundan001", "Royal Kundan Set"))
	mock.ExpectQuery("SELECT \\* FROM `bangle_color_variants`").WillReturnRows(variantRowsFor("kundan001",
		models.BangleColorVariant{ID: "k001-blue", ColorName: "Sapphire Blue", Position: 0}))

	bangle, err := svc.UpdateBangle(context.Background(), "kundan001", UpdateBangleInput{
		Variants: []VariantInput{{ID: "k001-blue", ColorName: "Sapphire Blue"}},
	})
	require.NoError(t, err)
	require.Len(t, bangle.ColorVariants, 1)
	assert.Equal(t, "k001-blue", bangle.ColorVariants[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root), "old variant image must be deleted on full replace")
}

func TestDeleteBangleRemovesRowAndImageFiles(t *testing.T) {
	svc, mock, root := newCatalogService(t)
	baseImage := seedFile(t, root, imagestore.DirBangles, "royal.png")
	variantImage := seedFile(t, root, imagestore.DirVariants, "red.png")

	rows := sqlmock.NewRows([]string{"id", "name", "category_id", "price", "base_image_url"}).
		AddRow("kundan001", "Royal Kundan Set", "kundan", "2999.00", baseImage)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(rows)
	mock.ExpectQuery("SELECT \\* FROM `bangle_color_variants`").WillReturnRows(variantRowsFor("kundan001",
		models.BangleColorVariant{ID: "k001-red", ColorName: "Ruby Red", ImageURL: variantImage, Position: 0}))
	mock.ExpectExec("DELETE FROM `bangles`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteBangle(context.Background(), "kundan001"))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root))
}

func TestDeleteBangleNotFound(t *testing.T) {
	svc, mock, _ := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `bangles`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.DeleteBangle(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Rollback on a failed transaction step must not leave this request's files
// behind.
func TestCreateBangleInsertFailureCleansUp(t *testing.T) {
	svc, mock, root := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bangles`").WillReturnRows(bangleCountRows(0))
	mock.ExpectExec("INSERT INTO `bangles`").WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	_, err := svc.CreateBangle(context.Background(), CreateBangleInput{
		ID: "kundan001", Name: "Royal Kundan Set", CategoryID: "kundan", Price: decimal.NewFromInt(2999),
		BaseImageFile: uploadHeader(t, "baseImageFile", pngBytes),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, storedFiles(t, root))
}
