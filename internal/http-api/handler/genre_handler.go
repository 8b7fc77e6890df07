package handler

import (
	"net/http"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/service"
	"yamdb/internal/permission"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres", middleware.Guard(permission.Catalog))
	{
		genres.GET("", h.List)
		genres.POST("", h.Create)
		genres.DELETE("/:slug", h.Delete)
	}
}

// List godoc
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Param        search     query  string  false  "Name contains"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  dto.Paginated[dto.GenreResponse]
// @Router       /genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	genres, total, err := h.genreService.List(ctx, c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.MapSlice(genres, dto.FromModelToGenreResponse), total, page, pageSize))
}

// Create godoc
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateGenreDTO true "Genre"
// @Success      201  {object}  dto.GenreResponse
// @Failure      400  {object}  map[string][]string
// @Router       /genres [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	genre, err := h.genreService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(*genre))
}

// Delete removes a genre and detaches it from every title
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.genreService.Delete(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
