package handler

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/api/middleware"
	"teamforge/internal/dto"
	"teamforge/internal/service"
	"teamforge/pkg/constants"
	"teamforge/pkg/responses"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create 发帖
// @Summary 发布动态
// @Description 发帖成功后作者积分+1
// @Tags Post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "帖子"
// @Success 201 {object} responses.Response{data=dto.PostCreatedResponse}
// @Router /api/post/create [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.postService.Create(middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Created(c, "发布成功", resp)
}

// UploadMedia 上传图片或视频
// @Summary 上传帖子媒体
// @Tags Post
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param media formData file true "图片或视频"
// @Success 200 {object} responses.Response{data=dto.UploadResponse}
// @Router /api/post/upload-media [post]
func (h *PostHandler) UploadMedia(c *gin.Context) {
	file, closer, err := formFile(c, constants.FormFieldMedia)
	if err != nil {
		responses.Error(c, err)
		return
	}
	defer closer.Close()

	resp, err := h.postService.UploadMedia(c.Request.Context(), middleware.CurrentEmail(c), file)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// ListByAuthor 某用户的帖子
// @Summary 按作者查询帖子
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param email query string true "作者邮箱"
// @Success 200 {object} responses.Response{data=[]dto.PostResponse}
// @Router /api/posts/get [get]
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	var query dto.PostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	posts, err := h.postService.ListByAuthor(query.Email)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, posts)
}

// Feed 全部动态
// @Summary 动态流
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.PostResponse}
// @Router /api/posts/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.postService.Feed()
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, posts)
}

// Like 点赞
// @Summary 点赞
// @Tags Post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LikePostRequest true "帖子ID"
// @Success 200 {object} responses.Response
// @Failure 404 {object} responses.Response
// @Router /api/posts/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	var req dto.LikePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.postService.Like(req.PostID); err != nil {
		responses.Error(c, err)
		return
	}
	responses.SuccessWithMessage(c, "点赞成功", nil)
}

// Comment 评论
// @Summary 评论
// @Tags Post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CommentPostRequest true "评论"
// @Success 200 {object} responses.Response
// @Failure 404 {object} responses.Response
// @Router /api/posts/comment [post]
func (h *PostHandler) Comment(c *gin.Context) {
	var req dto.CommentPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.postService.Comment(middleware.CurrentEmail(c), &req); err != nil {
		responses.Error(c, err)
		return
	}
	responses.SuccessWithMessage(c, "评论成功", nil)
}
