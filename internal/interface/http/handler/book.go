package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 馆藏HTTP处理器
type BookHandler struct {
	addBookUseCase    *appbook.AddBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建馆藏处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:    addBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// AddBook 图书入库
// @Summary      图书入库
// @Description  新增馆藏，可借副本数等于总副本数
// @Tags         馆藏
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse} "入库成功"
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Failure      401 {object} response.Response "未登录"
// @Router       /books/add [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		ItemType:    req.ItemType,
		TotalCopies: req.TotalCopies,
		PublishYear: req.PublishYear,
		Publisher:   req.Publisher,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book added successfully", result)
}

// ListBooks 馆藏列表
// @Summary      馆藏列表
// @Tags         馆藏
// @Produce      json
// @Param        category query string false "分类"
// @Success      200 {object} response.Response{data=[]appbook.BookResponse}
// @Router       /books/all [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	h.list(c, "")
}

// SearchBooks 按书名、作者、ISBN搜索
// @Summary      搜索图书
// @Tags         馆藏
// @Produce      json
// @Param        q query string false "关键词"
// @Param        category query string false "分类"
// @Success      200 {object} response.Response{data=[]appbook.BookResponse}
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	h.list(c, c.Query("q"))
}

func (h *BookHandler) list(c *gin.Context, keyword string) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Keyword:  keyword,
		Category: c.Query("category"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result, len(result))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         馆藏
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c, "id", book.ErrBookNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", result)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  省略的字段保持不变；总副本数不能少于借出数量
// @Tags         馆藏
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改内容"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseID(c, "id", book.ErrBookNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		ItemType:    req.ItemType,
		TotalCopies: req.TotalCopies,
		PublishYear: req.PublishYear,
		Publisher:   req.Publisher,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Book updated successfully", result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  仍有副本借出时拒绝删除
// @Tags         馆藏
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "仍有副本借出"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseID(c, "id", book.ErrBookNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Book deleted successfully", nil)
}
