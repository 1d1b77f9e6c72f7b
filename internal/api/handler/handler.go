package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamforge/internal/service"
	pkgErrors "teamforge/pkg/errors"
	"teamforge/pkg/responses"
	"teamforge/pkg/utils"
)

// bindError 参数校验失败统一返回400
func bindError(c *gin.Context, err error) {
	responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
}

// formFile 读取上传文件, 调用方负责关闭
func formFile(c *gin.Context, field string) (*service.UploadFile, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, pkgErrors.ErrMissingFile
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "读取上传文件失败", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.UploadFile{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Body:        file,
	}, file, nil
}
