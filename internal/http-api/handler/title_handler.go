package handler

import (
	"net/http"
	"strconv"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/http-api/service"
	"yamdb/internal/permission"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	titles := router.Group("/titles", middleware.Guard(permission.Catalog))
	titles.Use(middleware.SanitizeFields("description"))
	{
		titles.GET("", h.List)
		titles.POST("", h.Create)
		titles.GET("/:title_id", h.Get)
		titles.PATCH("/:title_id", h.Update)
		titles.DELETE("/:title_id", h.Delete)
	}
}

// List godoc
// @Summary      List titles
// @Tags         titles
// @Produce      json
// @Param        category   query  string  false  "Category slug"
// @Param        genre      query  string  false  "Genre slug"
// @Param        name       query  string  false  "Name contains"
// @Param        year       query  int     false  "Release year"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  dto.Paginated[dto.TitleResponse]
// @Failure      400  {object}  map[string]string
// @Router       /titles [get]
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filter.Year = &year
	}
	page, pageSize := pagination(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	titles, total, err := h.titleService.List(ctx, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.MapSlice(titles, dto.FromModelToTitleResponse), total, page, pageSize))
}

// Get godoc
// @Summary      Get a title
// @Tags         titles
// @Produce      json
// @Param        title_id  path  int  true  "Title ID"
// @Success      200  {object}  dto.TitleResponse
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [get]
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*title))
}

// Create godoc
// @Summary      Create a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTitleDTO true "Title"
// @Success      201  {object}  dto.TitleResponse
// @Failure      400  {object}  map[string][]string
// @Router       /titles [post]
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(*title))
}

// Update godoc
// @Summary      Partially update a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id  path  int                 true  "Title ID"
// @Param        request   body  dto.UpdateTitleDTO  true  "Fields to change"
// @Success      200  {object}  dto.TitleResponse
// @Failure      400  {object}  map[string][]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [patch]
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "title_id")
	if !ok {
		return
	}
	var req dto.UpdateTitleDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.titleService.Update(ctx, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*title))
}

// Delete removes a title with its reviews and comments
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.titleService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
