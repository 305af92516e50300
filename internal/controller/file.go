package controller

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/util"
)

type FileController struct {
	*baseController
}

// Branding uploads only; anything else is rejected before touching storage.
var ALLOWED_UPLOAD_CONTENT_TYPE = []string{"image/jpeg", "image/png", "image/webp"}

const maxUploadSizeBytes = 5 << 20 // 5 MiB

// UploadFile receives a multipart "file" field, stores it in the bucket under
// a date-based path and returns its public url.
func (fc FileController) UploadFile(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		fc.app.Logger.Debugf("No file uploaded: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No file uploaded", util.GenerateErrorMessages(errors.New("file is required"), "file"), nil)
		return
	}

	if file.Size > maxUploadSizeBytes {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File too large", util.GenerateErrorMessages(errors.New("file exceeds the 5MB limit"), "file"), nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !slices.Contains(ALLOWED_UPLOAD_CONTENT_TYPE, contentType) {
		fc.app.Logger.Debugf("Rejected upload with content type %s", contentType)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file type", util.GenerateErrorMessages(errors.New("only jpeg, png and webp images are allowed"), "file"), nil)
		return
	}

	info, err := util.UploadFileToS3ByFileHeader(file, &util.FileUploadOptions{
		DirectoryPath: util.GetUploadDirectoryPath(time.Now()),
		UniquePrefix:  true,
		Bucket:        fc.app.Config.Minio.BUCKET,
		S3:            fc.app.S3,
	})
	if err != nil {
		fc.app.Logger.Errorf("Failed to upload file: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload file", util.GenerateErrorMessages(errors.New("failed to upload file")), nil)
		return
	}

	scheme := "http"
	if fc.app.Config.Minio.USE_SSL {
		scheme = "https"
	}
	fileURL := fmt.Sprintf("%s://%s/%s/%s", scheme, fc.app.Config.Minio.ENDPOINT, info.Bucket, info.Key)

	util.ResponseSuccess(ctx, gin.H{
		"file_url": fileURL,
		"filename": info.Key,
		"size":     info.Size,
	})
}
