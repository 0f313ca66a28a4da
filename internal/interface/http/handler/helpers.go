package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bindJSON 绑定请求体
// 空请求体按零值处理，必填项交给用例校验，这样缺字段和空请求体返回同一条提示
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.ErrBindError.WithMessage("Invalid request: " + err.Error())
	}
	return nil
}

// parseID 解析路径参数中的ID
func parseID(c *gin.Context, name string, notFound *apperrors.AppError) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		// 非法ID视为不存在
		return 0, notFound
	}
	return uint(id), nil
}
