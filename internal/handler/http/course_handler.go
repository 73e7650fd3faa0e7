package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/dto"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

type CourseHandler struct {
	courseUsecase usecasecontract.ICourseUseCase
}

func NewCourseHandler(uc usecasecontract.ICourseUseCase) *CourseHandler {
	return &CourseHandler{courseUsecase: uc}
}

// ListCourses lists the published catalogue.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	page, pageSize := pageParams(c)
	courses, total, err := h.courseUsecase.ListPublishedCourses(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: h.toResponses(courses), Total: total, Page: page, PageSize: pageSize})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseUsecase.GetCourse(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, http.StatusOK, course)
}

// ListCreatorCourses returns the creator's courses visible to the caller.
func (h *CourseHandler) ListCreatorCourses(c *gin.Context) {
	courses, err := h.courseUsecase.ListCreatorCourses(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"items": h.toResponses(courses)})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	course, err := h.courseUsecase.CreateCourse(c.Request.Context(), middleware.PrincipalFrom(c), toCourseInput(req))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	course, err := h.courseUsecase.UpdateCourse(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), toCourseInput(req))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, http.StatusOK, course)
}

func (h *CourseHandler) PublishCourse(c *gin.Context) {
	course, err := h.courseUsecase.PublishCourse(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, http.StatusOK, course)
}

func (h *CourseHandler) UnpublishCourse(c *gin.Context) {
	course, err := h.courseUsecase.UnpublishCourse(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseUsecase.DeleteCourse(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) respond(c *gin.Context, status int, course *entity.Course) {
	SuccessHandler(c, status, dto.ToCourseResponse(*course, h.courseUsecase.ThumbnailURL(course)))
}

func (h *CourseHandler) toResponses(courses []entity.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, dto.ToCourseResponse(courses[i], h.courseUsecase.ThumbnailURL(&courses[i])))
	}
	return out
}

func toCourseInput(req dto.CourseRequest) usecasecontract.CourseInput {
	return usecasecontract.CourseInput{
		Title:        req.Title,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		ThumbnailKey: req.ThumbnailKey,
		VideoKey:     req.VideoKey,
	}
}
