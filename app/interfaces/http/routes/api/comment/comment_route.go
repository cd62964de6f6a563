package comment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/auth"
	"animehi.app/anime-api-gateway/app/domain/comment"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
)

const maxContentLength = 1000

type CommentRoute struct {
	commentService *comment.CommentService
	authService    *auth.AuthService
	limiters       *middleware.RateLimiterRegistry
}

func NewCommentRoute(
	commentService *comment.CommentService,
	authService *auth.AuthService,
	limiters *middleware.RateLimiterRegistry,
) *CommentRoute {
	return &CommentRoute{
		commentService: commentService,
		authService:    authService,
		limiters:       limiters,
	}
}

func (route *CommentRoute) RegisterRouter(router gin.IRouter) {
	commentRouter := router.Group("/comment")
	commentRouter.GET("/get-comments/:episodeId", route.ListByEpisode)
	commentRouter.GET("/replies/:id", route.ListReplies)

	authenticated := commentRouter.Group("",
		route.authService.VerifyLoginMiddleware(),
		route.authService.RegisteredUserMiddleware(),
	)
	authenticated.POST("/create-comment", route.limiters.Comment, route.Create)
	authenticated.PATCH("/update-comment/:id", route.limiters.Comment, route.Update)
	authenticated.DELETE("/delete-comment/:id", route.limiters.Comment, route.Delete)
	authenticated.POST("/reply/:id", route.limiters.Replies, route.CreateReply)
	authenticated.POST("/like/:id", route.limiters.Like, route.ToggleLike)
}

type CommentAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	EpisodeID string        `json:"episodeId"`
	Content   string        `json:"content"`
	LikeCount int64         `json:"likeCount"`
	IsReply   bool          `json:"isReply"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	User      CommentAuthor `json:"user"`
}

type ToggleLikeResponse struct {
	ID        string `json:"id"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"likeCount"`
}

type CreateCommentRequest struct {
	EpisodeID string `json:"episodeId" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

func commentToResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.PublicID,
		EpisodeID: c.EpisodeID,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		IsReply:   c.ParentID != nil,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User: CommentAuthor{
			ID:     c.AuthorPublicID,
			Name:   c.AuthorName,
			Avatar: c.AuthorAvatar,
		},
	}
}

func validContent(reqCtx *gin.Context, content string) (string, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "content must not be empty"})
		return "", false
	}
	if len(content) > maxContentLength {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "content is too long"})
		return "", false
	}
	return content, true
}

func replyCommentError(reqCtx *gin.Context, err error) {
	switch {
	case errors.Is(err, comment.ErrNotFound):
		reqCtx.JSON(http.StatusNotFound, responses.ErrorResponse{Message: "comment not found"})
	case errors.Is(err, comment.ErrNotOwner):
		reqCtx.JSON(http.StatusForbidden, responses.ErrorResponse{Message: "not your comment"})
	default:
		reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{Message: "internal server error"})
	}
}

// @Summary List comments for an episode
// @Tags comments
// @Produce json
// @Param episodeId path string true "Episode ID"
// @Param page query int false "Page, starting at 1"
// @Param pageSize query int false "Page size, max 100"
// @Success 200 {object} responses.ListResponse[CommentResponse]
// @Router /api/comment/get-comments/{episodeId} [get]
func (route *CommentRoute) ListByEpisode(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	episodeID := reqCtx.Param("episodeId")
	page, _ := strconv.Atoi(reqCtx.Query("page"))
	pageSize, _ := strconv.Atoi(reqCtx.Query("pageSize"))

	result, err := route.commentService.ListByEpisode(ctx, episodeID, page, pageSize)
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}

	data := make([]CommentResponse, 0, len(result.Items))
	for _, c := range result.Items {
		data = append(data, commentToResponse(c))
	}
	reqCtx.JSON(http.StatusOK, responses.ListResponse[CommentResponse]{
		Success:  true,
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
		Data:     data,
	})
}

// @Summary List replies under a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} responses.GeneralResponse[[]CommentResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/comment/replies/{id} [get]
func (route *CommentRoute) ListReplies(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	items, err := route.commentService.ListReplies(ctx, reqCtx.Param("id"))
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	data := make([]CommentResponse, 0, len(items))
	for _, c := range items {
		data = append(data, commentToResponse(c))
	}
	reqCtx.JSON(http.StatusOK, responses.OK(data))
}

// @Summary Post a comment on an episode
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} responses.GeneralResponse[CommentResponse]
// @Failure 401 {object} responses.ErrorResponse
// @Failure 429 {object} responses.RateLimitExceededResponse
// @Router /api/comment/create-comment [post]
func (route *CommentRoute) Create(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req CreateCommentRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "episodeId and content are required"})
		return
	}
	content, ok := validContent(reqCtx, req.Content)
	if !ok {
		return
	}
	u, _ := auth.GetUserFromContext(reqCtx)

	created, err := route.commentService.CreateComment(ctx, u.ID, req.EpisodeID, content)
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	created.AuthorPublicID = u.PublicID
	created.AuthorName = u.Name
	created.AuthorAvatar = u.Avatar
	reqCtx.JSON(http.StatusCreated, responses.OK(commentToResponse(created)))
}

// @Summary Reply to a comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} responses.GeneralResponse[CommentResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/comment/reply/{id} [post]
func (route *CommentRoute) CreateReply(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req CreateReplyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "content is required"})
		return
	}
	content, ok := validContent(reqCtx, req.Content)
	if !ok {
		return
	}
	u, _ := auth.GetUserFromContext(reqCtx)

	created, err := route.commentService.CreateReply(ctx, u.ID, reqCtx.Param("id"), content)
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	created.AuthorPublicID = u.PublicID
	created.AuthorName = u.Name
	created.AuthorAvatar = u.Avatar
	reqCtx.JSON(http.StatusCreated, responses.OK(commentToResponse(created)))
}

// @Summary Edit your comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} responses.GeneralResponse[CommentResponse]
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/comment/update-comment/{id} [patch]
func (route *CommentRoute) Update(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var req UpdateCommentRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "content is required"})
		return
	}
	content, ok := validContent(reqCtx, req.Content)
	if !ok {
		return
	}
	u, _ := auth.GetUserFromContext(reqCtx)

	updated, err := route.commentService.UpdateComment(ctx, u.ID, reqCtx.Param("id"), content)
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	updated.AuthorPublicID = u.PublicID
	updated.AuthorName = u.Name
	updated.AuthorAvatar = u.Avatar
	reqCtx.JSON(http.StatusOK, responses.OK(commentToResponse(updated)))
}

// @Summary Delete your comment and its replies
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.GeneralResponse[bool]
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/comment/delete-comment/{id} [delete]
func (route *CommentRoute) Delete(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	u, _ := auth.GetUserFromContext(reqCtx)

	if err := route.commentService.DeleteComment(ctx, u.ID, reqCtx.Param("id")); err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.OK(true))
}

// @Summary Toggle a like on a comment
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.GeneralResponse[ToggleLikeResponse]
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/comment/like/{id} [post]
func (route *CommentRoute) ToggleLike(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	u, _ := auth.GetUserFromContext(reqCtx)
	publicID := reqCtx.Param("id")

	liked, likeCount, err := route.commentService.ToggleLike(ctx, u.ID, publicID)
	if err != nil {
		replyCommentError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.OK(ToggleLikeResponse{
		ID:        publicID,
		Liked:     liked,
		LikeCount: likeCount,
	}))
}
